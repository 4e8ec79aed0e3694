package entity

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrImageNotFound файл изображения отсутствует
	ErrImageNotFound = errors.New("image file not found")
	// ErrDecode файл не является растровым изображением
	ErrDecode = errors.New("cannot decode image")
	// ErrSchema в таблице нет обязательных колонок
	ErrSchema = errors.New("csv file contains unexpected column names")
	// ErrEmptyDataset в таблице нет строк с точностью
	ErrEmptyDataset = errors.New("results table has no rows")
	// ErrClassifierDisabled сборка без классификатора
	ErrClassifierDisabled = errors.New("classifier is not enabled")
)

// SchemaError перечисляет отсутствующие колонки.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	quoted := make([]string, len(e.Missing))
	for i, name := range e.Missing {
		quoted[i] = fmt.Sprintf("%q", name)
	}
	return fmt.Sprintf("%s: missing %s", ErrSchema, strings.Join(quoted, ", "))
}

// Is позволяет проверять errors.Is(err, ErrSchema).
func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}

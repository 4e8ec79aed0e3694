package telegram

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	app "mnist-kit/internal/application"
	"mnist-kit/internal/container"
	"mnist-kit/internal/domain/entity"
	"mnist-kit/internal/infrastructure/plotting"
)

const (
	msgStart = `👋 Привет! Я помогаю с экспериментом по распознаванию рукописных цифр.

🖼 Пришлите картинку с цифрой, и я превращу её в вектор из 784 чисел в формате MNIST.
📊 Пришлите CSV с результатами перебора параметров, и я построю диаграммы и найду лучшую комбинацию.

📋 Команды:
/vectorize — преобразовать изображение
/summary — разобрать таблицу результатов
/help — справка
/cancel — отменить текущую операцию`

	msgHelp = `ℹ️ Как пользоваться ботом:

/vectorize — отправьте фото или файл с цифрой. Картинка переводится в оттенки серого, сжимается до 28×28, и каждый пиксель записывается как 1 − яркость/255.

/summary — отправьте CSV с колонками:
• Accuracy
• Neurons in hidden layer 1
• Neurons in hidden layer 2
• Learning rate
• Batch size

Вы получите четыре диаграммы и строку с наибольшей точностью.

/cancel — отменить операцию`

	msgAwaitingImage   = "🖼 Отправьте изображение цифры (фото или файл)."
	msgAwaitingResults = "📊 Отправьте CSV-файл с результатами."
	msgCancelled       = "❌ Операция отменена. Выберите /vectorize или /summary."
	msgChooseAction    = "Выберите действие: /vectorize или /summary. Справка: /help"
	msgUnknownCommand  = "❓ Неизвестная команда. Используйте /help для справки."
	msgBusy            = "⏳ Подождите, предыдущий файл ещё обрабатывается."
	msgSendImage       = "🖼 Пожалуйста, отправьте изображение цифры."
	msgSendCSV         = "📊 Пожалуйста, отправьте CSV-файл."
	msgTooLarge        = "⚠️ Файл слишком большой."
	msgProcessing      = "⏳ Обрабатываю файл..."
	msgNotImage        = "⚠️ Не удалось прочитать изображение. Попробуйте другой файл."
	msgEmptyTable      = "⚠️ В таблице нет ни одной строки с результатами."
	msgProcessingError = "⚠️ Не удалось обработать файл. Попробуйте ещё раз."
)

// Telegram отдаёт боту файлы не больше 20 МБ.
const maxDownloadBytes = 20 << 20

// Bot представляет Telegram-бота
type Bot struct {
	api    *tgbotapi.BotAPI
	app    *container.Container
	client *http.Client
}

// NewBot создаёт нового бота
func NewBot(token string, c *container.Container) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Info().Str("account", api.Self.UserName).Msg("authorized")

	return &Bot{
		api:    api,
		app:    c,
		client: http.DefaultClient,
	}, nil
}

// Run запускает основной цикл обработки сообщений
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.safeHandle(ctx, update.Message)
		}
	}
}

// safeHandle не даёт одному сообщению остановить цикл обновлений
func (b *Bot) safeHandle(ctx context.Context, msg *tgbotapi.Message) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Int64("chat", msg.Chat.ID).Msg("message handler panicked")
			b.recoverUser(ctx, msg)
		}
	}()
	b.handleMessage(ctx, msg)
}

// recoverUser возвращает пользователя в меню после сбоя
func (b *Bot) recoverUser(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From != nil {
		if _, err := b.app.UserService.Cancel(ctx, msg.From.ID, msg.Chat.ID); err != nil {
			log.Error().Err(err).Msg("reset user state")
		}
	}
	b.sendMessage(msg.Chat.ID, msgProcessingError)
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	user, err := b.app.UserService.Get(ctx, msg.From.ID, msg.Chat.ID)
	if err != nil {
		log.Error().Err(err).Int64("user", msg.From.ID).Msg("get user")
		return
	}

	if msg.IsCommand() {
		b.handleCommand(ctx, msg, user)
		return
	}

	switch user.State {
	case entity.StateAwaitingImage:
		fileID, size, ok := imageFile(msg)
		if !ok {
			b.sendMessage(msg.Chat.ID, msgSendImage)
			return
		}
		b.handleImage(ctx, msg.Chat.ID, user, fileID, size)

	case entity.StateAwaitingResults:
		if msg.Document == nil || !isCSV(msg.Document) {
			b.sendMessage(msg.Chat.ID, msgSendCSV)
			return
		}
		b.handleResults(ctx, msg.Chat.ID, user, msg.Document.FileID, msg.Document.FileSize)

	case entity.StateProcessing:
		b.sendMessage(msg.Chat.ID, msgBusy)

	default:
		b.sendMessage(msg.Chat.ID, msgChooseAction)
	}
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message, user *entity.User) {
	var (
		err  error
		text string
	)

	switch msg.Command() {
	case "start":
		_, err = b.app.UserService.Cancel(ctx, user.ID, user.ChatID)
		text = msgStart

	case "help":
		text = msgHelp

	case "vectorize":
		_, err = b.app.UserService.BeginVectorize(ctx, user.ID, user.ChatID)
		text = msgAwaitingImage

	case "summary":
		_, err = b.app.UserService.BeginSummary(ctx, user.ID, user.ChatID)
		text = msgAwaitingResults

	case "cancel":
		_, err = b.app.UserService.Cancel(ctx, user.ID, user.ChatID)
		text = msgCancelled

	default:
		text = msgUnknownCommand
	}

	if err != nil {
		log.Error().Err(err).Str("command", msg.Command()).Msg("update user state")
	}
	b.sendMessage(msg.Chat.ID, text)
}

// handleImage превращает присланное изображение в вектор
func (b *Bot) handleImage(ctx context.Context, chatID int64, user *entity.User, fileID string, size int) {
	if !b.startProcessing(ctx, chatID, user, size) {
		return
	}
	defer b.finishProcessing(ctx, user)

	data, err := b.downloadFile(ctx, fileID)
	if err != nil {
		log.Error().Err(err).Msg("download image")
		b.sendMessage(chatID, msgProcessingError)
		return
	}

	out, err := b.app.VectorizeService.ProcessUpload(ctx, data)
	if err != nil {
		log.Warn().Err(err).Int("bytes", len(data)).Msg("vectorize upload")
		b.sendMessage(chatID, imageErrorMessage(err))
		return
	}

	payload, err := out.Vector.MarshalJSON()
	if err != nil {
		log.Error().Err(err).Msg("encode vector")
		b.sendMessage(chatID, msgProcessingError)
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: "vector.json", Bytes: payload})
	doc.Caption = vectorCaption(out)
	if _, err := b.api.Send(doc); err != nil {
		log.Error().Err(err).Msg("send vector")
	}
}

// handleResults строит диаграммы и отчёт по таблице результатов
func (b *Bot) handleResults(ctx context.Context, chatID int64, user *entity.User, fileID string, size int) {
	if !b.startProcessing(ctx, chatID, user, size) {
		return
	}
	defer b.finishProcessing(ctx, user)

	data, err := b.downloadFile(ctx, fileID)
	if err != nil {
		log.Error().Err(err).Msg("download results")
		b.sendMessage(chatID, msgProcessingError)
		return
	}

	out, err := b.app.SummaryService.SummarizeReader(ctx, bytes.NewReader(data))
	if err != nil {
		log.Warn().Err(err).Msg("summarize upload")
		b.sendMessage(chatID, resultsErrorMessage(err))
		return
	}

	if b.app.PlotRenderer != nil {
		b.sendPlots(chatID, out.Relationships)
	}

	var report bytes.Buffer
	if err := app.WriteReport(&report, out.Best); err != nil {
		log.Error().Err(err).Msg("format report")
		return
	}
	b.sendMessage(chatID, strings.TrimSpace(report.String()))
}

// sendPlots отправляет диаграммы одним альбомом
func (b *Bot) sendPlots(chatID int64, plots []entity.ScatterSeries) {
	media := make([]interface{}, 0, len(plots))
	for _, series := range plots {
		png, err := b.app.PlotRenderer.Render(series)
		if err != nil {
			log.Error().Err(err).Str("column", series.Column).Msg("render plot")
			continue
		}
		photo := tgbotapi.NewInputMediaPhoto(tgbotapi.FileBytes{Name: plotting.FileName(series), Bytes: png})
		photo.Caption = plotting.Title(series)
		media = append(media, photo)
	}
	if len(media) == 0 {
		return
	}

	if _, err := b.api.SendMediaGroup(tgbotapi.NewMediaGroup(chatID, media)); err != nil {
		log.Error().Err(err).Int("plots", len(media)).Msg("send plots")
	}
}

func (b *Bot) startProcessing(ctx context.Context, chatID int64, user *entity.User, size int) bool {
	if size > maxDownloadBytes {
		b.sendMessage(chatID, msgTooLarge)
		return false
	}

	if _, err := b.app.UserService.SetState(ctx, user.ID, user.ChatID, entity.StateProcessing); err != nil {
		log.Error().Err(err).Msg("update user state")
	}
	b.sendMessage(chatID, msgProcessing)
	return true
}

// finishProcessing возвращает пользователя в главное меню
func (b *Bot) finishProcessing(ctx context.Context, user *entity.User) {
	if _, err := b.app.UserService.Cancel(ctx, user.ID, user.ChatID); err != nil {
		log.Error().Err(err).Msg("update user state")
	}
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(b.api.Token), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	if len(data) > maxDownloadBytes {
		return nil, fmt.Errorf("file exceeds %d bytes", maxDownloadBytes)
	}

	return data, nil
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Error().Err(err).Int64("chat", chatID).Msg("send message")
	}
}

// imageFile выбирает фото наибольшего размера или документ-изображение.
func imageFile(msg *tgbotapi.Message) (string, int, bool) {
	if len(msg.Photo) > 0 {
		photo := msg.Photo[len(msg.Photo)-1]
		return photo.FileID, photo.FileSize, true
	}
	if msg.Document != nil && isImage(msg.Document) {
		return msg.Document.FileID, msg.Document.FileSize, true
	}
	return "", 0, false
}

func isImage(doc *tgbotapi.Document) bool {
	if strings.HasPrefix(doc.MimeType, "image/") {
		return true
	}
	switch strings.ToLower(filepath.Ext(doc.FileName)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp":
		return true
	}
	return false
}

func isCSV(doc *tgbotapi.Document) bool {
	switch doc.MimeType {
	case "text/csv", "application/csv", "text/comma-separated-values":
		return true
	}
	return strings.EqualFold(filepath.Ext(doc.FileName), ".csv")
}

func vectorCaption(out *app.VectorizeOutput) string {
	caption := fmt.Sprintf("Вектор из %d значений (%d×%d).", entity.VectorLen, entity.ImageSide, entity.ImageSide)
	if out.Prediction != nil {
		caption += fmt.Sprintf("\nПохоже на цифру %d (уверенность %.0f%%).", out.Prediction.Digit, out.Prediction.Confidence*100)
	}
	return caption
}

func imageErrorMessage(err error) string {
	if errors.Is(err, entity.ErrDecode) {
		return msgNotImage
	}
	return msgProcessingError
}

func resultsErrorMessage(err error) string {
	var schemaErr *entity.SchemaError
	switch {
	case errors.As(err, &schemaErr):
		return "⚠️ В таблице не хватает колонок: " + strings.Join(schemaErr.Missing, ", ")
	case errors.Is(err, entity.ErrEmptyDataset):
		return msgEmptyTable
	default:
		return msgProcessingError
	}
}

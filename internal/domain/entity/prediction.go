package entity

// Prediction результат классификации вектора.
type Prediction struct {
	Digit      int       // предсказанная цифра
	Confidence float32   // выход сети для этой цифры
	Scores     []float32 // все выходы сети
}

package container

import (
	app "mnist-kit/internal/application"
	"mnist-kit/internal/domain/port"
)

type Container struct {
	UserService      *app.UserService
	VectorizeService *app.VectorizeService
	SummaryService   *app.SummaryService
	PlotRenderer     port.ScatterRenderer
}

// Deps внешние зависимости сервисов. Classifier и Viewer могут быть nil.
type Deps struct {
	Users      port.UserRepository
	Vectorizer port.ImageVectorizer
	Classifier port.DigitClassifier
	Loader     port.ResultsLoader
	Viewer     port.PlotViewer
	Renderer   port.ScatterRenderer
}

func New(deps Deps) *Container {
	userService := app.NewUserService(deps.Users)
	vectorizeService := app.NewVectorizeService(deps.Vectorizer, deps.Classifier)
	summaryService := app.NewSummaryService(deps.Loader, deps.Viewer)

	return &Container{
		UserService:      userService,
		VectorizeService: vectorizeService,
		SummaryService:   summaryService,
		PlotRenderer:     deps.Renderer,
	}
}

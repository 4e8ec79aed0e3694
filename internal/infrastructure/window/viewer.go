//go:build ebiten
// +build ebiten

package window

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog/log"

	"mnist-kit/internal/domain/entity"
	"mnist-kit/internal/domain/port"
	"mnist-kit/internal/infrastructure/plotting"
)

// Viewer показывает диаграммы в окне, по одной на колонку.
// Любая клавиша или щелчок переходит к следующей, закрытие окна завершает показ.
type Viewer struct {
	Renderer port.ScatterRenderer
}

// NewViewer создаёт оконный просмотрщик.
func NewViewer(renderer port.ScatterRenderer) *Viewer {
	return &Viewer{Renderer: renderer}
}

type page struct {
	title string
	img   image.Image
}

// Show блокируется до закрытия окна или просмотра всех диаграмм.
func (v *Viewer) Show(ctx context.Context, plots []entity.ScatterSeries) error {
	pages := make([]page, 0, len(plots))
	for _, series := range plots {
		data, err := v.Renderer.Render(series)
		if err != nil {
			return err
		}
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("decode plot %q: %w", series.Column, err)
		}
		pages = append(pages, page{title: plotting.Title(series), img: img})
	}
	if len(pages) == 0 {
		return nil
	}

	b := pages[0].img.Bounds()
	ebiten.SetWindowSize(b.Dx(), b.Dy())
	ebiten.SetWindowTitle(pages[0].title)

	g := &pager{ctx: ctx, pages: pages}
	if err := ebiten.RunGame(g); err != nil && err != ebiten.Termination {
		return err
	}
	return ctx.Err()
}

type pager struct {
	ctx     context.Context
	pages   []page
	current int
	shown   *ebiten.Image
}

func (p *pager) Update() error {
	if p.ctx.Err() != nil {
		return ebiten.Termination
	}
	if len(inpututil.AppendJustPressedKeys(nil)) == 0 && !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return nil
	}

	p.current++
	if p.current >= len(p.pages) {
		return ebiten.Termination
	}
	if p.shown != nil {
		p.shown.Deallocate()
		p.shown = nil
	}
	ebiten.SetWindowTitle(p.pages[p.current].title)
	log.Debug().Int("page", p.current+1).Int("total", len(p.pages)).Msg("next plot")
	return nil
}

func (p *pager) Draw(screen *ebiten.Image) {
	if p.shown == nil {
		p.shown = ebiten.NewImageFromImage(p.pages[p.current].img)
	}
	screen.DrawImage(p.shown, nil)
}

func (p *pager) Layout(outsideWidth, outsideHeight int) (int, int) {
	b := p.pages[p.current].img.Bounds()
	return b.Dx(), b.Dy()
}

var _ port.PlotViewer = (*Viewer)(nil)

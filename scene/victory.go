package scene

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/platformer/ecs/entity"
	"go.uber.org/zap"
	"golang.org/x/image/colornames"
)

const (
	victoryTitleSize = 48
	victoryBodySize  = 20
)

// VictoryScene shows the run summary with Play Again and Quit buttons.
type VictoryScene struct {
	ctx  *Context
	ui   *ebitenui.UI
	next Transition
	quit bool
}

func NewVictoryScene() *VictoryScene {
	return &VictoryScene{}
}

func (s *VictoryScene) Name() string { return VictoryName }

func (s *VictoryScene) Enter(ctx *Context) error {
	s.ctx = ctx
	s.next = Transition{}
	s.quit = false
	s.ui = s.buildUI(ctx)
	ctx.Log.Info("victory",
		zap.Int("coins", ctx.Stats.CoinsCollected),
		zap.Int("total", ctx.Stats.CoinsTotal),
		zap.Int("deaths", ctx.Stats.Deaths),
		zap.Int("frames", ctx.Stats.Frames),
	)
	return nil
}

// summaryLines lists the body lines under the title.
func summaryLines(st Stats) []string {
	return []string{
		fmt.Sprintf("Coins: %d / %d", st.CoinsCollected, st.CoinsTotal),
		fmt.Sprintf("Deaths: %d", st.Deaths),
	}
}

func uiFace(size float64) text.Face {
	f, err := entity.NewFace(size)
	if err != nil {
		return entity.FallbackFace()
	}
	return f
}

func (s *VictoryScene) buildUI(ctx *Context) *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{A: 200})
	btnIdle := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	btnPressed := imageui.NewNineSliceColor(color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 255})

	titleFace := uiFace(victoryTitleSize)
	bodyFace := uiFace(victoryBodySize)
	btnTextColor := &widget.ButtonTextColor{Idle: color.White}
	center := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(12),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 24, Bottom: 24, Left: 40, Right: 40}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(int(ctx.ViewW/2), int(ctx.ViewH/2)),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)

	panel.AddChild(widget.NewText(
		widget.TextOpts.Text("Victory!", &titleFace, colornames.Gold),
		widget.TextOpts.WidgetOpts(center),
	))
	for _, line := range summaryLines(ctx.Stats) {
		panel.AddChild(widget.NewText(
			widget.TextOpts.Text(line, &bodyFace, color.White),
			widget.TextOpts.WidgetOpts(center),
		))
	}

	button := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnIdle, Pressed: btnPressed}),
			widget.ButtonOpts.Text(label, &bodyFace, btnTextColor),
			widget.ButtonOpts.WidgetOpts(center),
			widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) { onClick() }),
		)
	}
	panel.AddChild(button("Play Again", s.playAgain))
	panel.AddChild(button("Quit", func() { s.quit = true }))

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	return &ebitenui.UI{Container: root}
}

func (s *VictoryScene) playAgain() {
	s.next = Transition{Next: PlatformerName}
}

func (s *VictoryScene) Update() (Transition, error) {
	if s.ui != nil {
		s.ui.Update()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		s.playAgain()
	}
	if s.quit {
		return Transition{}, ebiten.Termination
	}
	return s.next, nil
}

func (s *VictoryScene) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)
	if s.ui != nil {
		s.ui.Draw(screen)
	}
}

func (s *VictoryScene) Exit() {
	s.ui = nil
}

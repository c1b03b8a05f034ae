package ui

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// JoinUI is the username and room form shown before entering the arena.
type JoinUI struct {
	UI *ebitenui.UI

	OnJoin func(username, roomID string)

	usernameInput *widget.TextInput
	roomInput     *widget.TextInput
	statusLabel   *widget.Label
	joinBtn       *widget.Button

	titleFace  text.Face
	normalFace text.Face
	smallFace  text.Face
}

func NewJoinUI(onJoin func(username, roomID string)) (*JoinUI, error) {
	ui := &JoinUI{OnJoin: onJoin}
	if err := ui.loadFonts(); err != nil {
		return nil, err
	}
	ui.buildUI()
	return ui, nil
}

func (ui *JoinUI) loadFonts() error {
	fontSource, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return fmt.Errorf("failed to load UI font: %w", err)
	}

	ui.titleFace = &text.GoTextFace{Source: fontSource, Size: 32}
	ui.normalFace = &text.GoTextFace{Source: fontSource, Size: 16}
	ui.smallFace = &text.GoTextFace{Source: fontSource, Size: 12}
	return nil
}

func (ui *JoinUI) buildUI() {
	rootContainer := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(color.RGBA{17, 17, 17, 255})),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)

	contentContainer := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(16)),
			widget.RowLayoutOpts.Spacing(10),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)

	titleLabel := widget.NewLabel(
		widget.LabelOpts.Text("splashed", &ui.titleFace, &widget.LabelColor{
			Idle: color.RGBA{255, 255, 255, 255},
		}),
	)
	contentContainer.AddChild(titleLabel)

	ui.usernameInput = ui.newInput("username", 220)
	contentContainer.AddChild(ui.row("Name:", ui.usernameInput))

	ui.roomInput = ui.newInput("any room", 220)
	contentContainer.AddChild(ui.row("Room:", ui.roomInput))

	ui.joinBtn = widget.NewButton(
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(120, 30)),
		widget.ButtonOpts.Image(&widget.ButtonImage{
			Idle:     image.NewNineSliceColor(color.RGBA{255, 163, 32, 255}),
			Hover:    image.NewNineSliceColor(color.RGBA{255, 190, 90, 255}),
			Pressed:  image.NewNineSliceColor(color.RGBA{200, 120, 20, 255}),
			Disabled: image.NewNineSliceColor(color.RGBA{60, 50, 40, 255}),
		}),
		widget.ButtonOpts.Text("Join", &ui.normalFace, &widget.ButtonTextColor{
			Idle:     color.RGBA{17, 17, 17, 255},
			Hover:    color.RGBA{17, 17, 17, 255},
			Pressed:  color.RGBA{17, 17, 17, 255},
			Disabled: color.RGBA{100, 100, 100, 255},
		}),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if ui.OnJoin != nil {
				ui.OnJoin(ui.usernameInput.GetText(), ui.roomInput.GetText())
			}
		}),
	)
	contentContainer.AddChild(ui.joinBtn)

	ui.statusLabel = widget.NewLabel(
		widget.LabelOpts.Text("", &ui.smallFace, &widget.LabelColor{
			Idle: color.RGBA{236, 31, 38, 255},
		}),
	)
	contentContainer.AddChild(ui.statusLabel)

	rootContainer.AddChild(contentContainer)

	ui.UI = &ebitenui.UI{Container: rootContainer}
}

func (ui *JoinUI) row(label string, input *widget.TextInput) *widget.Container {
	row := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(8),
		)),
	)
	row.AddChild(widget.NewLabel(
		widget.LabelOpts.Text(label, &ui.normalFace, &widget.LabelColor{
			Idle: color.RGBA{200, 200, 200, 255},
		}),
	))
	row.AddChild(input)
	return row
}

func (ui *JoinUI) newInput(placeholder string, width int) *widget.TextInput {
	return widget.NewTextInput(
		widget.TextInputOpts.WidgetOpts(widget.WidgetOpts.MinSize(width, 26)),
		widget.TextInputOpts.Image(&widget.TextInputImage{
			Idle:     image.NewNineSliceColor(color.RGBA{40, 40, 40, 255}),
			Disabled: image.NewNineSliceColor(color.RGBA{30, 30, 30, 255}),
		}),
		widget.TextInputOpts.Face(&ui.normalFace),
		widget.TextInputOpts.Color(&widget.TextInputColor{
			Idle:          color.RGBA{255, 255, 255, 255},
			Disabled:      color.RGBA{128, 128, 128, 255},
			Caret:         color.RGBA{255, 255, 255, 255},
			DisabledCaret: color.RGBA{128, 128, 128, 255},
		}),
		widget.TextInputOpts.Placeholder(placeholder),
		widget.TextInputOpts.Padding(widget.NewInsetsSimple(4)),
	)
}

func (ui *JoinUI) SetStatus(msg string) {
	if ui.statusLabel != nil {
		ui.statusLabel.Label = msg
	}
}

// SetJoining disables the button while a join request is in flight.
func (ui *JoinUI) SetJoining(joining bool) {
	if ui.joinBtn != nil {
		ui.joinBtn.GetWidget().Disabled = joining
	}
}

func (ui *JoinUI) Update() {
	ui.UI.Update()
}

package app

import (
	"github.com/sadopc/qrpop/internal/core/history"
	"github.com/sadopc/qrpop/internal/core/qr"
)

type notice struct {
	text    string
	isError bool
}

// popupView is the controller's View. The controller writes into it during a
// call; the App copies the result into its panels afterwards with syncView.
// It is shared by pointer so every copy of the App value sees the same state.
type popupView struct {
	input      string
	inputDirty bool

	code          *qr.Code
	list          history.List
	exportEnabled bool
	notices       []notice
}

func (v *popupView) SetInput(text string) {
	v.input = text
	v.inputDirty = true
}

func (v *popupView) ShowRender(code *qr.Code)      { v.code = code }
func (v *popupView) ShowHistory(list history.List) { v.list = list }
func (v *popupView) SetExportEnabled(enabled bool) { v.exportEnabled = enabled }

func (v *popupView) ShowNotice(text string, isError bool) {
	v.notices = append(v.notices, notice{text: text, isError: isError})
}

// takeNotice pops pending notices and returns the one to display: the last
// error if any, otherwise the last notice.
func (v *popupView) takeNotice() (notice, bool) {
	if len(v.notices) == 0 {
		return notice{}, false
	}
	pick := v.notices[len(v.notices)-1]
	for _, n := range v.notices {
		if n.isError {
			pick = n
		}
	}
	v.notices = v.notices[:0]
	return pick, true
}

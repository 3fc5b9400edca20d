package ui

import (
	"log/slog"
	"sort"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-datefield/internal/config"
	"github.com/tartampluch/go-datefield/internal/engine"
)

// sortContactDates orders rows by column; ties fall back to the name.
func sortContactDates(rows []engine.ContactDate, col int, asc bool) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		var cmp int
		switch col {
		case config.ColIDName:
			cmp = strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		case config.ColIDKind:
			cmp = strings.Compare(a.Kind, b.Kind)
		default: // config.ColIDDate
			cmp = compareDates(a.Date, b.Date)
		}
		if cmp == 0 {
			cmp = strings.Compare(a.Name, b.Name)
		}
		if !asc {
			cmp = -cmp
		}
		return cmp < 0
	})
}

// compareDates orders chronologically, coarsest field first.
func compareDates(a, b engine.Date) int {
	for _, f := range []engine.Field{engine.Year, engine.Month, engine.Day, engine.Hours, engine.Mins, engine.Secs} {
		if d := a.Get(f) - b.Get(f); d != 0 {
			return d
		}
	}
	return 0
}

// kindLabel localizes a ContactDate kind.
func (app *DateFieldApp) kindLabel(kind string) string {
	if kind == config.KindAnniversary {
		return app.GetMsg(config.TKeyKindAnniversary)
	}
	return app.GetMsg(config.TKeyKindBirthday)
}

// SeedFromImport loads an imported date into the editor and publishes it.
func (app *DateFieldApp) SeedFromImport(c engine.ContactDate) {
	if app.Entry == nil {
		return
	}
	app.Entry.SetDate(c.Date)
	d, _ := app.Entry.Date()
	app.onCommitted(d)

	slog.Info(config.LogMsgSeeded,
		config.LogKeyComponent, config.CompUIImport,
		config.LogKeyName, c.Name,
		config.LogKeyKind, c.Kind,
		config.LogKeyValue, d.String())
}

// ShowImportWindow lists the imported dates in a sortable table. Selecting a
// row seeds the editor. Only one import window exists at a time.
func (app *DateFieldApp) ShowImportWindow() {
	if app.importWindow != nil {
		app.importWindow.RequestFocus()
		return
	}

	app.importWindow = app.App.NewWindow(app.GetMsg(config.TKeyWinImport))
	app.importWindow.Resize(fyne.NewSize(config.ImportWinWidth, config.ImportWinHeight))

	// Local copy: a later import must not reorder rows under the table.
	app.ImportedMut.RLock()
	rows := make([]engine.ContactDate, len(app.Imported))
	copy(rows, app.Imported)
	app.ImportedMut.RUnlock()

	slog.Info(config.LogMsgOpenWin,
		config.LogKeyComponent, config.CompUIImport,
		config.LogKeyCount, len(rows))

	sortCol := config.ColIDDate
	sortAsc := true

	performSort := func() {
		sortContactDates(rows, sortCol, sortAsc)
		slog.Debug(config.LogMsgSorted,
			config.LogKeyComponent, config.CompUIImport,
			config.LogKeySortCol, sortCol,
			config.LogKeySortAsc, sortAsc)
	}
	performSort()

	table := widget.NewTable(
		func() (int, int) {
			return len(rows), config.ColCount
		},
		func() fyne.CanvasObject {
			return widget.NewLabel(config.TablePlaceholder)
		},
		func(id widget.TableCellID, o fyne.CanvasObject) {
			label := o.(*widget.Label)
			if id.Row >= len(rows) {
				return
			}
			c := rows[id.Row]

			switch id.Col {
			case config.ColIDName:
				label.SetText(c.Name)
			case config.ColIDKind:
				label.SetText(app.kindLabel(c.Kind))
			case config.ColIDDate:
				label.SetText(c.Date.String())
			}
		},
	)

	table.ShowHeaderRow = true
	table.CreateHeader = func() fyne.CanvasObject {
		return widget.NewButton(config.TablePlaceholder, func() {})
	}
	table.UpdateHeader = func(id widget.TableCellID, o fyne.CanvasObject) {
		btn := o.(*widget.Button)

		var titleKey string
		switch id.Col {
		case config.ColIDName:
			titleKey = config.TKeyColName
		case config.ColIDKind:
			titleKey = config.TKeyColKind
		case config.ColIDDate:
			titleKey = config.TKeyColDate
		}

		text := app.GetMsg(titleKey)
		if id.Col == sortCol {
			if sortAsc {
				text += config.SortIconAsc
			} else {
				text += config.SortIconDesc
			}
		}
		btn.SetText(text)

		btn.OnTapped = func() {
			if sortCol == id.Col {
				sortAsc = !sortAsc
			} else {
				sortCol = id.Col
				sortAsc = true
			}
			performSort()
			table.UnselectAll()
			table.Refresh()
		}
	}

	table.OnSelected = func(id widget.TableCellID) {
		if id.Row >= 0 && id.Row < len(rows) {
			app.SeedFromImport(rows[id.Row])
		}
	}

	table.SetColumnWidth(config.ColIDName, config.ColWidthName)
	table.SetColumnWidth(config.ColIDKind, config.ColWidthKind)
	table.SetColumnWidth(config.ColIDDate, config.ColWidthDate)

	app.importWindow.SetContent(container.NewBorder(nil, nil, nil, nil, table))
	app.importWindow.SetOnClosed(func() {
		app.importWindow = nil
	})

	app.importWindow.Show()
}

package app

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"yashubustudio/idgen/generator"
	"yashubustudio/idgen/locales"
)

const logDebounceInterval = 150 * time.Millisecond

type uiState struct {
	service *Service
	cfg     Config

	w             fyne.Window
	countEntry    *widget.Entry
	seedEntry     *widget.Entry
	noiseSel      *widget.Select
	formatSel     *widget.Select
	localesEntry  *widget.Entry
	log           *widget.Entry
	status        *widget.Label
	progress      *widget.ProgressBar
	configSummary *widget.Label
	resTbl        *widget.Table
	columns       []tableColumn
	rows          []PreviewRow
	statusBind    binding.String
	logBind       binding.String
	progressBind  binding.Float
	logLines      []string
	logMu         sync.Mutex
	logUpdateCh   chan struct{}

	generateBtn *widget.Button
	jsonBtn     *widget.Button
	csvBtn      *widget.Button
}

// logWriter routes a *log.Logger into the log pane.
type logWriter struct{ u *uiState }

func (l logWriter) Write(p []byte) (int, error) {
	for _, line := range strings.Split(strings.ReplaceAll(string(p), "\r\n", "\n"), "\n") {
		if line != "" {
			l.u.appendLog(line)
		}
	}
	return len(p), nil
}

func buildUI(a fyne.App, cfg Config) (*uiState, error) {
	u := &uiState{cfg: cfg}
	u.w = a.NewWindow("ID Card NER Generator - Preview")

	u.statusBind = binding.NewString()
	_ = u.statusBind.Set("準備完了")
	u.progressBind = binding.NewFloat()
	u.logBind = binding.NewString()
	u.startLogUpdater()

	svc, err := NewService(cfg, log.New(logWriter{u}, "", 0))
	if err != nil {
		return nil, err
	}
	u.service = svc
	u.cfg = svc.Config()

	u.countEntry = widget.NewEntry()
	u.countEntry.SetText(strconv.Itoa(u.cfg.Count))
	u.seedEntry = widget.NewEntry()
	u.seedEntry.SetText(strconv.FormatUint(u.cfg.Seed, 10))
	randomSeedBtn := widget.NewButtonWithIcon("", theme.ViewRefreshIcon(), func() {
		u.seedEntry.SetText(strconv.FormatUint(rand.Uint64(), 10))
	})
	u.noiseSel = widget.NewSelect(svc.NoiseChoices(), nil)
	u.noiseSel.SetSelected(u.cfg.NoiseLevel)

	formatLabels := make([]string, len(formatChoices))
	for i, c := range formatChoices {
		formatLabels[i] = c.Label
	}
	u.formatSel = widget.NewSelect(formatLabels, nil)
	u.formatSel.SetSelected(formatLabel(u.cfg.Format))

	u.localesEntry = widget.NewMultiLineEntry()
	u.localesEntry.SetText(strings.Join(u.cfg.Locales, ", "))
	u.localesEntry.SetPlaceHolder("fr_FR, es_ES, it_IT")
	u.localesEntry.SetMinRowsVisible(2)
	allLocalesBtn := widget.NewButton("全ロケール", func() {
		u.localesEntry.SetText(strings.Join(locales.Available(), ", "))
	})
	listLocalesBtn := widget.NewButtonWithIcon("一覧", theme.InfoIcon(), func() { u.showLocales() })

	u.log = widget.NewEntryWithData(u.logBind)
	u.log.MultiLine = true
	u.log.Wrapping = fyne.TextWrapWord
	u.log.SetPlaceHolder("処理ログ")
	u.log.Disable()

	u.status = widget.NewLabelWithData(u.statusBind)
	u.progress = widget.NewProgressBarWithData(u.progressBind)
	u.progress.Hide()
	u.configSummary = widget.NewLabel("")
	u.configSummary.Wrapping = fyne.TextWrapWord

	u.generateBtn = widget.NewButtonWithIcon("生成", theme.ConfirmIcon(), func() { u.onGenerate() })
	u.jsonBtn = widget.NewButtonWithIcon("JSONエクスポート", theme.DocumentSaveIcon(), func() { u.onExportJSON() })
	u.csvBtn = widget.NewButtonWithIcon("CSVエクスポート", theme.DocumentSaveIcon(), func() { u.onExportCSV() })
	settingsBtn := widget.NewButtonWithIcon("設定", theme.SettingsIcon(), func() { u.openSettings() })

	u.columns = makeColumns()
	u.resTbl = widget.NewTable(
		func() (int, int) { return len(u.rows) + 1, len(u.columns) },
		func() fyne.CanvasObject {
			lbl := widget.NewLabel("")
			lbl.Truncation = fyne.TextTruncateEllipsis
			return lbl
		},
		func(id widget.TableCellID, obj fyne.CanvasObject) {
			lbl := obj.(*widget.Label)
			if id.Row == 0 {
				lbl.SetText(u.columns[id.Col].Title)
				lbl.TextStyle = fyne.TextStyle{Bold: true}
				return
			}
			lbl.TextStyle = fyne.TextStyle{}
			rowIdx := id.Row - 1
			if rowIdx >= len(u.rows) || id.Col >= len(u.columns) {
				lbl.SetText("")
				return
			}
			lbl.SetText(u.columns[id.Col].Render(u.rows[rowIdx]))
		},
	)
	u.resTbl.OnSelected = func(id widget.TableCellID) {
		if id.Row <= 0 || id.Row-1 >= len(u.rows) {
			return
		}
		u.showDetail(u.rows[id.Row-1])
		u.resTbl.UnselectAll()
	}
	u.applyColumnWidths()

	form := widget.NewForm(
		widget.NewFormItem("件数", u.countEntry),
		widget.NewFormItem("シード", container.NewBorder(nil, nil, nil, randomSeedBtn, u.seedEntry)),
		widget.NewFormItem("ノイズ", u.noiseSel),
		widget.NewFormItem("形式", u.formatSel),
		widget.NewFormItem("ロケール", u.localesEntry),
	)
	left := container.NewVBox(
		widget.NewLabelWithStyle("生成条件", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		form,
		container.NewGridWithColumns(2, allLocalesBtn, listLocalesBtn),
		container.NewGridWithColumns(2, u.generateBtn, settingsBtn),
		container.NewGridWithColumns(2, u.jsonBtn, u.csvBtn),
		widget.NewSeparator(),
		widget.NewLabelWithStyle("進捗", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		u.progress,
		u.status,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("設定サマリ", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		u.configSummary,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("ログ", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewMax(u.log),
	)

	split := container.NewHSplit(container.NewVScroll(left), u.resTbl)
	split.Offset = 0.33

	u.w.SetContent(split)
	u.w.Resize(fyne.NewSize(1180, 760))
	u.updateConfigSummary()
	return u, nil
}

func makeColumns() []tableColumn {
	return []tableColumn{
		{Title: "#", Width: 60, Render: func(r PreviewRow) string { return strconv.Itoa(r.Index + 1) }},
		{Title: "形式", Width: 100, Render: func(r PreviewRow) string { return formatLabel(r.Format) }},
		{Title: "本文", Width: 520, Render: func(r PreviewRow) string { return truncateText(singleLine(r.Sample.Text), 120) }},
		{Title: "エンティティ", Width: 100, Render: func(r PreviewRow) string { return strconv.Itoa(len(r.Sample.Entities)) }},
		{Title: "検証", Width: 80, Render: func(r PreviewRow) string {
			if r.Mismatches == 0 {
				return "OK"
			}
			return fmt.Sprintf("NG (%d)", r.Mismatches)
		}},
	}
}

func (u *uiState) applyColumnWidths() {
	for i, col := range u.columns {
		u.resTbl.SetColumnWidth(i, col.Width)
	}
}

func (u *uiState) setBusy(b bool) {
	fyne.Do(func() {
		if b {
			u.generateBtn.Disable()
			u.jsonBtn.Disable()
			u.csvBtn.Disable()
		} else {
			u.generateBtn.Enable()
			u.jsonBtn.Enable()
			u.csvBtn.Enable()
		}
	})
}

func (u *uiState) appendLog(msg string) {
	now := time.Now().Format("15:04:05")
	line := fmt.Sprintf("[%s] %s", now, msg)

	u.logMu.Lock()
	u.logLines = append(u.logLines, line)
	if len(u.logLines) > 200 {
		u.logLines = u.logLines[len(u.logLines)-200:]
	}
	u.logMu.Unlock()

	if u.logUpdateCh == nil {
		u.flushLog()
		return
	}
	select {
	case u.logUpdateCh <- struct{}{}:
	default:
	}
}

func (u *uiState) startLogUpdater() {
	if u.logUpdateCh != nil {
		return
	}
	u.logUpdateCh = make(chan struct{}, 1)
	go u.logUpdateLoop()
}

func (u *uiState) logUpdateLoop() {
	timer := time.NewTimer(logDebounceInterval)
	if !timer.Stop() {
		<-timer.C
	}
	for {
		select {
		case <-u.logUpdateCh:
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(logDebounceInterval)
		case <-timer.C:
			u.flushLog()
		}
	}
}

func (u *uiState) flushLog() {
	u.logMu.Lock()
	text := strings.Join(u.logLines, "\n")
	u.logMu.Unlock()
	_ = u.logBind.Set(text)
}

func (u *uiState) setStatus(text string) {
	_ = u.statusBind.Set(text)
}

func (u *uiState) configureProgress(min, max float64) {
	fyne.Do(func() {
		u.progress.Min = min
		u.progress.Max = max
	})
}

func (u *uiState) setProgressValue(value float64) {
	_ = u.progressBind.Set(value)
}

func (u *uiState) showProgress() {
	fyne.Do(func() {
		u.progress.Show()
	})
}

func (u *uiState) hideProgress() {
	fyne.Do(func() {
		u.progress.Hide()
	})
}

func (u *uiState) updateConfigSummary() {
	cfg := u.cfg
	workers := "自動"
	if cfg.Workers > 0 {
		workers = strconv.Itoa(cfg.Workers)
	}
	share := "設定ファイル"
	if cfg.OverrideShare {
		share = fmt.Sprintf("%.0f%%", cfg.SimpleShare*100)
	}
	summary := fmt.Sprintf("ノイズ:%s / 形式:%s / シンプル比率:%s / ワーカー:%s / ロケール:%d / 生成設定:%s",
		cfg.NoiseLevel, formatLabel(cfg.Format), share, workers, len(cfg.Locales), cfg.GeneratorConfig)
	u.configSummary.SetText(summary)
}

// readForm copies the form inputs into the settings.
func (u *uiState) readForm() (Config, error) {
	cfg := u.cfg
	count, err := strconv.Atoi(strings.TrimSpace(u.countEntry.Text))
	if err != nil || count <= 0 {
		return cfg, fmt.Errorf("件数が不正です: %q", u.countEntry.Text)
	}
	cfg.Count = count
	seed, err := strconv.ParseUint(strings.TrimSpace(u.seedEntry.Text), 10, 64)
	if err != nil {
		return cfg, fmt.Errorf("シードが不正です: %q", u.seedEntry.Text)
	}
	cfg.Seed = seed
	if u.noiseSel.Selected != "" {
		cfg.NoiseLevel = u.noiseSel.Selected
	}
	for _, c := range formatChoices {
		if c.Label == u.formatSel.Selected {
			cfg.Format = c.Value
		}
	}
	cfg.Locales = parseListText(u.localesEntry.Text)
	if _, err := locales.New(cfg.Locales...); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (u *uiState) applyConfig(cfg Config) {
	u.cfg = u.service.UpdateConfig(cfg)
	if err := saveSettings(u.cfg.SettingsFile, u.cfg); err != nil {
		u.appendLog(fmt.Sprintf("設定の保存に失敗しました: %v", err))
	}
	u.updateConfigSummary()
}

func (u *uiState) onGenerate() {
	cfg, err := u.readForm()
	if err != nil {
		dialog.ShowError(err, u.w)
		return
	}
	u.applyConfig(cfg)
	if cfg.Count != u.cfg.Count {
		u.countEntry.SetText(strconv.Itoa(u.cfg.Count))
	}

	total := u.cfg.Count
	u.configureProgress(0, float64(total))
	u.setProgressValue(0)
	u.showProgress()
	u.setStatus("生成中...")
	u.setBusy(true)

	go func() {
		rows, stats, err := u.service.Generate(context.Background(), func(done, total int) {
			u.setProgressValue(float64(done))
			u.setStatus(fmt.Sprintf("生成中 %d/%d", done, total))
		})
		u.setBusy(false)
		u.hideProgress()
		if err != nil {
			fyne.Do(func() {
				dialog.ShowError(err, u.w)
			})
			u.setStatus("エラー")
			u.appendLog(fmt.Sprintf("エラー: %v", err))
			return
		}
		mismatches := 0
		for _, r := range rows {
			mismatches += r.Mismatches
		}
		fyne.Do(func() {
			u.rows = rows
			u.resTbl.Refresh()
		})
		u.setStatus(fmt.Sprintf("完了 %d件 (%.1fs) 位置精度 %.2f%%", stats.Samples, stats.Elapsed.Seconds(),
			100-percent(mismatches, stats.Entities)))
		u.appendLog(fmt.Sprintf("シンプル %d件 / バイリンガル %d件 / 平均エンティティ %.1f",
			stats.Formats[generator.FormatSimple], stats.Formats[generator.FormatBilingual], stats.AveragePerSample()))
	}()
}

func (u *uiState) showDetail(r PreviewRow) {
	text := widget.NewLabel(r.Sample.Text)
	text.Wrapping = fyne.TextWrapWord
	entities := widget.NewLabel(strings.Join(entityLines(r.Sample), "\n"))
	entities.TextStyle = fyne.TextStyle{Monospace: true}
	content := container.NewVScroll(container.NewVBox(
		widget.NewLabelWithStyle("本文", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		text,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("エンティティ", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		entities,
	))
	content.SetMinSize(fyne.NewSize(640, 420))
	dialog.ShowCustom(fmt.Sprintf("サンプル %d (%s)", r.Index+1, formatLabel(r.Format)), "閉じる", content, u.w)
}

func (u *uiState) showLocales() {
	lines := make([]string, 0, 20)
	for _, code := range locales.Available() {
		lines = append(lines, fmt.Sprintf("%-6s  %s", code, locales.DisplayName(code)))
	}
	lbl := widget.NewLabel(strings.Join(lines, "\n"))
	lbl.TextStyle = fyne.TextStyle{Monospace: true}
	dialog.ShowCustom("利用可能なロケール", "閉じる", container.NewVScroll(lbl), u.w)
}

func (u *uiState) onExportJSON() {
	if len(u.rows) == 0 {
		dialog.ShowInformation("情報", "出力データがありません", u.w)
		return
	}
	rows := u.rows
	fd := dialog.NewFileSave(func(uc fyne.URIWriteCloser, err error) {
		if err != nil || uc == nil {
			return
		}
		defer uc.Close()
		if err := writeSamplesJSON(uc, rows); err != nil {
			dialog.ShowError(err, u.w)
			return
		}
		u.appendLog(fmt.Sprintf("JSONエクスポート完了 (%d件): %s", len(rows), uc.URI().Path()))
	}, u.w)
	fd.SetFileName("ner_training_data.json")
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	fd.Show()
}

func (u *uiState) onExportCSV() {
	if len(u.rows) == 0 {
		dialog.ShowInformation("情報", "出力データがありません", u.w)
		return
	}
	rows := u.rows
	fd := dialog.NewFileSave(func(uc fyne.URIWriteCloser, err error) {
		if err != nil || uc == nil {
			return
		}
		defer uc.Close()
		if err := writeEntityCSV(uc, rows); err != nil {
			dialog.ShowError(err, u.w)
			return
		}
		u.appendLog(fmt.Sprintf("CSVエクスポート完了 (%d件)", len(rows)))
	}, u.w)
	fd.SetFileName("entities.csv")
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".csv"}))
	fd.Show()
}

func (u *uiState) openSettings() {
	cfg := u.cfg
	workersEntry := widget.NewEntry()
	workersEntry.SetText(strconv.Itoa(cfg.Workers))
	workersEntry.SetPlaceHolder("0 = 自動")

	shareCheck := widget.NewCheck("シンプル形式の比率を上書き", nil)
	shareCheck.SetChecked(cfg.OverrideShare)
	shareLabel := widget.NewLabel(fmt.Sprintf("%.2f", cfg.SimpleShare))
	shareSlider := widget.NewSlider(0, 1)
	shareSlider.Step = 0.05
	shareSlider.SetValue(cfg.SimpleShare)
	shareSlider.OnChanged = func(v float64) { shareLabel.SetText(fmt.Sprintf("%.2f", v)) }
	updateControls := func() {
		if shareCheck.Checked {
			shareSlider.Enable()
		} else {
			shareSlider.Disable()
		}
	}
	shareCheck.OnChanged = func(bool) { updateControls() }
	updateControls()

	genCfgEntry := widget.NewEntry()
	genCfgEntry.SetText(cfg.GeneratorConfig)

	form := &widget.Form{Items: []*widget.FormItem{
		{Text: "ワーカー数", Widget: workersEntry},
		{Text: "形式比率", Widget: shareCheck},
		{Text: "シンプル比率", Widget: container.NewBorder(nil, nil, nil, shareLabel, shareSlider)},
		{Text: "生成設定ファイル", Widget: genCfgEntry},
	}}

	dialog.NewCustomConfirm("設定", "OK", "キャンセル", form, func(ok bool) {
		if !ok {
			return
		}
		newCfg := cfg
		if v, err := strconv.Atoi(strings.TrimSpace(workersEntry.Text)); err == nil {
			newCfg.Workers = v
		}
		newCfg.OverrideShare = shareCheck.Checked
		newCfg.SimpleShare = shareSlider.Value
		newCfg.GeneratorConfig = genCfgEntry.Text
		u.applyConfig(newCfg)
		u.noiseSel.Options = u.service.NoiseChoices()
		u.noiseSel.Refresh()
		u.appendLog("設定を更新しました")
	}, u.w).Show()
}

package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/tetris/tetris"
)

// EventEntry is one recorded engine event.
type EventEntry struct {
	Seq   uint64
	Event tetris.Event
}

var allEventKinds = []tetris.EventKind{
	tetris.EventSpawned,
	tetris.EventLocked,
	tetris.EventLinesCleared,
	tetris.EventLevelUp,
	tetris.EventGameOver,
	tetris.EventRestarted,
	tetris.EventPaused,
	tetris.EventResumed,
}

// EventLog keeps the most recent events in a ring buffer and renders them as
// a filterable, pageable table.
type EventLog struct {
	entries  []EventEntry
	capacity int
	head     int
	seq      uint64

	filterText    string
	hiddenKinds   map[tetris.EventKind]bool
	sortAscending bool
	perPage       int
	currentPage   int
	selectedSeq   uint64
}

func NewEventLog(capacity, perPage int) *EventLog {
	return &EventLog{
		entries:     make([]EventEntry, 0, capacity),
		capacity:    capacity,
		hiddenKinds: make(map[tetris.EventKind]bool),
		perPage:     perPage,
	}
}

// Listener records every event it receives.
func (el *EventLog) Listener() tetris.Listener {
	return el.Record
}

func (el *EventLog) Record(ev tetris.Event) {
	el.seq++
	entry := EventEntry{Seq: el.seq, Event: ev}
	if len(el.entries) < el.capacity {
		el.entries = append(el.entries, entry)
		return
	}
	el.entries[el.head] = entry
	el.head = (el.head + 1) % el.capacity
}

// Len returns the number of retained events.
func (el *EventLog) Len() int {
	return len(el.entries)
}

// SetFilter sets the free-text filter matched against kind and piece.
func (el *EventLog) SetFilter(text string) {
	el.filterText = text
	el.currentPage = 0
}

// SetKindVisible shows or hides one event kind.
func (el *EventLog) SetKindVisible(kind tetris.EventKind, visible bool) {
	if visible {
		delete(el.hiddenKinds, kind)
	} else {
		el.hiddenKinds[kind] = true
	}
	el.currentPage = 0
}

// Entries returns the retained events that pass the filters, newest first
// unless ascending order was selected.
func (el *EventLog) Entries() []EventEntry {
	filterLower := strings.ToLower(el.filterText)
	out := make([]EventEntry, 0, len(el.entries))

	for _, entry := range el.entries {
		if el.hiddenKinds[entry.Event.Kind] {
			continue
		}
		if filterLower != "" {
			kind := entry.Event.Kind.String()
			piece := strings.ToLower(entry.Event.Piece.String())
			if !strings.Contains(kind, filterLower) && !strings.Contains(piece, filterLower) {
				continue
			}
		}
		out = append(out, entry)
	}

	sort.Slice(out, func(i, j int) bool {
		if el.sortAscending {
			return out[i].Seq < out[j].Seq
		}
		return out[i].Seq > out[j].Seq
	})
	return out
}

func (el *EventLog) Render() {
	if !imgui.BeginV("Event Log", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	filter := el.filterText
	if imgui.InputTextWithHint("##search", "Search...", &filter, imgui.InputTextFlagsNone, nil) {
		el.SetFilter(filter)
	}
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		el.SetFilter("")
		el.hiddenKinds = make(map[tetris.EventKind]bool)
	}

	for i, kind := range allEventKinds {
		if i%4 != 0 {
			imgui.SameLine()
		}
		visible := !el.hiddenKinds[kind]
		if imgui.Checkbox(kind.String(), &visible) {
			el.SetKindVisible(kind, visible)
		}
	}
	imgui.Separator()

	entries := el.Entries()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EventTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("#")
		imgui.TableSetupColumn("Kind")
		imgui.TableSetupColumn("Piece")
		imgui.TableSetupColumn("Lines")
		imgui.TableSetupColumn("Score")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			el.sortAscending = sortSpecs.Specs().SortDirection() == imgui.SortDirectionAscending
			entries = el.Entries()
			sortSpecs.SetSpecsDirty(false)
		}

		startIdx := el.currentPage * el.perPage
		endIdx := min(startIdx+el.perPage, len(entries))

		for i := startIdx; i < endIdx; i++ {
			entry := entries[i]
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := el.selectedSeq == entry.Seq
			if imgui.SelectableBoolV(fmt.Sprintf("%d", entry.Seq), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				el.selectedSeq = entry.Seq
			}

			imgui.TableNextColumn()
			imgui.Text(entry.Event.Kind.String())
			imgui.TableNextColumn()
			imgui.Text(entry.Event.Piece.String())
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", entry.Event.Lines))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d (+%d)", entry.Event.Score, entry.Event.ScoreDelta))
		}

		imgui.EndTable()
	}

	if len(entries) > el.perPage {
		totalPages := (len(entries) + el.perPage - 1) / el.perPage
		imgui.Text(fmt.Sprintf("Page %d / %d (%d events)", el.currentPage+1, totalPages, len(entries)))
		imgui.SameLine()
		if imgui.Button("Prev") && el.currentPage > 0 {
			el.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && el.currentPage < totalPages-1 {
			el.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d events", len(entries)))
	}

	imgui.End()
}

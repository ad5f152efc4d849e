package events

import "github.com/atomicstack/feed-reader/internal/logging"

type MenuTracer struct{}

type FilterTracer struct{}

type CommandTracer struct{}

type RefreshTracer struct{}

var (
	Menu    = MenuTracer{}
	Filter  = FilterTracer{}
	Command = CommandTracer{}
	Refresh = RefreshTracer{}
)

func (MenuTracer) Toggle(state string) {
	logging.Trace("menu.toggle", map[string]interface{}{"state": state})
}

func (MenuTracer) Select(index int, name, filter string) {
	logging.Trace("menu.select", map[string]interface{}{"index": index, "name": name, "filter": filter})
}

func (MenuTracer) Cursor(cursor int) {
	logging.Trace("menu.cursor", map[string]interface{}{"cursor": cursor})
}

func (FilterTracer) Cleared() {
	logging.Trace("filter.clear", nil)
}

func (FilterTracer) Append(filter string) {
	logging.Trace("filter.append", map[string]interface{}{"filter": filter})
}

func (FilterTracer) Backspace(filter string) {
	logging.Trace("filter.backspace", map[string]interface{}{"filter": filter})
}

func (FilterTracer) WordBackspace(filter string) {
	logging.Trace("filter.word-backspace", map[string]interface{}{"filter": filter})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}

func (RefreshTracer) Tick(index int) {
	logging.Trace("refresh.tick", map[string]interface{}{"index": index})
}

func (RefreshTracer) Skip(pending int) {
	logging.Trace("refresh.skip", map[string]interface{}{"pending": pending})
}

func (RefreshTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("refresh.error", map[string]interface{}{"error": err.Error()})
}

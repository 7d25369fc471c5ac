// events.go records inventory events in the audit log. Commands already log
// what they were asked to do; events add what the service actually changed,
// such as the surviving stack of a merge or a forced filter override.

package core

import (
	"github.com/jpl-au/stash/extension"
	"github.com/jpl-au/stash/internal/log"
)

// HandleEvent writes one audit entry per event. It never fails.
func (e *Extension) HandleEvent(_ extension.Context, ev extension.Event) error {
	b := log.Event("event:"+string(ev.EventType()), "event").Container(ev.EventContainer())

	switch v := ev.(type) {
	case extension.ContainerEvent:
		if v.From != "" {
			b = b.Detail("from", v.From)
		}
	case extension.ItemAddEvent:
		b = b.Item(v.Key).Count(v.Stack).Detail("name", v.Name)
		if v.Forced {
			b = b.Detail("forced", true)
		}
	case extension.ItemRemoveEvent:
		b = b.Item(v.Key).Detail("name", v.Name)
	case extension.ItemMoveEvent:
		b = b.Item(v.Key).Detail("from", v.From).Detail("merged", v.Merged)
	case extension.TagEvent:
		b = b.Item(v.Key).Detail("tag", v.Tag)
	case extension.OptionsEvent:
		b = b.Detail("before", v.Before).Detail("after", v.After)
	}

	b.Write(nil)
	return nil
}

// events.go defines the notifications extensions receive after inventory
// changes.
//
// Events are fired after the change is committed. Handlers observe; they
// cannot veto or roll back.

package extension

// EventType identifies the kind of event.
type EventType string

const (
	EventContainerCreate  EventType = "container:create"
	EventContainerDelete  EventType = "container:delete"
	EventContainerRestore EventType = "container:restore"
	EventContainerRename  EventType = "container:rename"
	EventItemAdd          EventType = "item:add"
	EventItemRemove       EventType = "item:remove"
	EventItemMove         EventType = "item:move"
	EventTagAdd           EventType = "tag:add"
	EventTagRemove        EventType = "tag:remove"
	EventOptionsChange    EventType = "options:change"
)

// Event is the base interface for all events.
type Event interface {
	EventType() EventType
	// EventContainer is the container the change happened in.
	EventContainer() string
}

// ContainerEvent is fired after a container lifecycle change. From is only
// set for renames.
type ContainerEvent struct {
	Type      EventType
	Container string
	From      string
}

func (e ContainerEvent) EventType() EventType   { return e.Type }
func (e ContainerEvent) EventContainer() string { return e.Container }

// ItemAddEvent is fired after an item is placed. Forced is true when the
// container's filter rejected the item and the caller overrode it.
type ItemAddEvent struct {
	Container string
	Key       string
	Name      string
	Stack     int
	Forced    bool
}

func (e ItemAddEvent) EventType() EventType   { return EventItemAdd }
func (e ItemAddEvent) EventContainer() string { return e.Container }

// ItemRemoveEvent is fired after an item is removed.
type ItemRemoveEvent struct {
	Container string
	Key       string
	Name      string
}

func (e ItemRemoveEvent) EventType() EventType   { return EventItemRemove }
func (e ItemRemoveEvent) EventContainer() string { return e.Container }

// ItemMoveEvent is fired after an item changes container. Key is the
// surviving stack, which differs from the moved key when stacks merged.
type ItemMoveEvent struct {
	From      string
	Container string
	Key       string
	Merged    bool
}

func (e ItemMoveEvent) EventType() EventType   { return EventItemMove }
func (e ItemMoveEvent) EventContainer() string { return e.Container }

// TagEvent is fired after a tag is added or removed.
type TagEvent struct {
	Container string
	Key       string
	Tag       string
	Added     bool
}

func (e TagEvent) EventType() EventType {
	if e.Added {
		return EventTagAdd
	}
	return EventTagRemove
}
func (e TagEvent) EventContainer() string { return e.Container }

// OptionsEvent is fired after a container's options change.
type OptionsEvent struct {
	Container string
	Before    map[string]string
	After     map[string]string
}

func (e OptionsEvent) EventType() EventType   { return EventOptionsChange }
func (e OptionsEvent) EventContainer() string { return e.Container }

// EventHandler is implemented by extensions that want to receive events.
type EventHandler interface {
	HandleEvent(ctx Context, e Event) error
}

package models

// Actor is the user who caused a notifiable event, reduced to the display
// fields that get snapshotted into the notification details.
type Actor struct {
	ID        uint   `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Avatar    string `json:"avatar"`
	PublicURL string `json:"publicUrl"`
}

// Resource identifies the domain object a notifiable event concerns
type Resource struct {
	ID    uint   `json:"id"`
	Class string `json:"class"`
}

// Notifiable describes what happened, who caused it, which resource it
// concerns and who should (or should not) be told about it.
type Notifiable interface {
	ActionKey() string
	IconKey() string
	SendToFollowers() bool
	Resource() *Resource
	IncludeUserIDs() []uint
	ExcludeUserIDs() []uint
	Doer() *Actor
	Details() map[string]interface{}
}

// Event is the plain-struct Notifiable used by the HTTP layer and by callers
// that dispatch notifications programmatically.
type Event struct {
	Action        string
	Icon          string
	ToFollowers   bool
	EventResource *Resource
	IncludeIDs    []uint
	ExcludeIDs    []uint
	EventDoer     *Actor
	EventDetails  map[string]interface{}
}

func (e *Event) ActionKey() string               { return e.Action }
func (e *Event) IconKey() string                 { return e.Icon }
func (e *Event) SendToFollowers() bool           { return e.ToFollowers }
func (e *Event) Resource() *Resource             { return e.EventResource }
func (e *Event) IncludeUserIDs() []uint          { return e.IncludeIDs }
func (e *Event) ExcludeUserIDs() []uint          { return e.ExcludeIDs }
func (e *Event) Doer() *Actor                    { return e.EventDoer }
func (e *Event) Details() map[string]interface{} { return e.EventDetails }

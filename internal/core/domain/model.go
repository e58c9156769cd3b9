package domain

// Surface identifies which inbound entry point a request arrived on.
type Surface string

const (
	// SurfaceEvent carries free-text messages from the event stream.
	SurfaceEvent Surface = "event"
	// SurfaceSlash carries structured slash commands.
	SurfaceSlash Surface = "slash"
)

// Request is the normalized form of an inbound webhook call, built after
// signature verification and consumed synchronously by the dispatcher.
type Request struct {
	Surface     Surface
	Channel     string
	Text        string
	Command     string
	ThreadTS    string
	ResponseURL string
}

// Outcome is the terminal state of a dispatched request.
type Outcome string

const (
	OutcomeUnauthorized   Outcome = "unauthorized"
	OutcomeNoCommand      Outcome = "no_command"
	OutcomeUnknownCommand Outcome = "unknown_command"
	OutcomeQueryFailed    Outcome = "query_failed"
	OutcomeDeliveryFailed Outcome = "delivery_failed"
	OutcomeResponded      Outcome = "responded"
)

// Issue is one tracker item in a search result.
type Issue struct {
	Key     string
	Summary string
	Status  string
	Type    string
	Link    string
}

// SearchResult holds the true total reported by the tracker and the
// returned page of issues, which may be shorter.
type SearchResult struct {
	Total  int
	Issues []Issue
}

// CommandKind selects the response-formatting strategy for a definition.
type CommandKind int

const (
	// KindQuery runs the definition's query and formats the result list.
	KindQuery CommandKind = iota
	// KindHelp renders the registry listing instead of running a query.
	KindHelp
)

// CommandDefinition binds a normalized token to a tracker query and its
// presentation. Definitions are registered once at startup and never change.
type CommandDefinition struct {
	Token       string
	Query       string
	Description string
	Kind        CommandKind
}

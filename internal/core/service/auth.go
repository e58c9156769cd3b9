package service

type Authorizer interface {
	IsAllowed(channel string) bool
}

// ChannelAuthorizer holds the static set of source channels permitted to
// trigger commands. The response to a rejected channel differs per surface,
// so the dispatcher owns that policy.
type ChannelAuthorizer struct {
	allowed map[string]struct{}
}

func NewChannelAuthorizer(channels []string) *ChannelAuthorizer {
	allowed := make(map[string]struct{}, len(channels))
	for _, channel := range channels {
		allowed[channel] = struct{}{}
	}

	return &ChannelAuthorizer{allowed: allowed}
}

func (a *ChannelAuthorizer) IsAllowed(channel string) bool {
	_, ok := a.allowed[channel]
	return ok
}

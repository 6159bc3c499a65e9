package session

import "sort"

// mutePolicy decides which members must be muted or unmuted for one
// session. It tracks the members it muted itself so it never touches a
// mute applied by anything else.
type mutePolicy struct {
	muted map[string]struct{}
}

func newMutePolicy() *mutePolicy {
	return &mutePolicy{
		muted: make(map[string]struct{}),
	}
}

// Evaluate computes the delta sets for the current enforcement state and
// room occupancy. It does not change the tracked set; callers acknowledge
// applied decisions with MarkMuted/MarkUnmuted, which is what makes a
// failed platform call retry on the next evaluation.
//
// While enforcing, every occupant not yet muted by us must be muted and
// every tracked member who left the room must be released. While not
// enforcing, every tracked member must be released. Both result sets are
// sorted for determinism.
func (p *mutePolicy) Evaluate(enforcing bool, occupants []string) (toMute, toUnmute []string) {
	inRoom := make(map[string]struct{}, len(occupants))
	for _, userID := range occupants {
		inRoom[userID] = struct{}{}
	}

	if enforcing {
		for _, userID := range occupants {
			if _, ok := p.muted[userID]; !ok {
				toMute = append(toMute, userID)
			}
		}
	}

	for userID := range p.muted {
		_, present := inRoom[userID]
		if !enforcing || !present {
			toUnmute = append(toUnmute, userID)
		}
	}

	sort.Strings(toMute)
	sort.Strings(toUnmute)
	return toMute, toUnmute
}

// MarkMuted records that a mute decision was applied
func (p *mutePolicy) MarkMuted(userID string) {
	p.muted[userID] = struct{}{}
}

// MarkUnmuted records that an unmute decision was applied
func (p *mutePolicy) MarkUnmuted(userID string) {
	delete(p.muted, userID)
}

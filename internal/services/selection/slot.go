package selection

import "github.com/mcoot/leelawheel/internal/model"

// NameSlot anchors a player to a stable position in [0, n). It depends only
// on the name, so daily variety comes from the permutation, not the slot.
func NameSlot(n int, player model.PlayerIdentity) int {
	if n <= 0 {
		return 0
	}
	h := int(model.NewPlayerKey(player))
	return ((h % n) + n) % n
}

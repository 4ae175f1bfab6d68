package draw

import (
	"fmt"
	"strings"
	"time"

	"github.com/mcoot/leelawheel/internal/model"
)

// CardFilename names the exported card image for a draw, e.g.
// LeelaCard-Alice-Smith-0007-20240101-120000.png. Times are formatted in t's
// own location.
func CardFilename(player model.PlayerIdentity, quoteIndex int, t time.Time) string {
	return fmt.Sprintf("LeelaCard-%s-%s-%04d-%s.png",
		filenamePart(player.FirstName),
		filenamePart(player.LastName),
		quoteIndex,
		t.Format("20060102-150405"),
	)
}

func filenamePart(s string) string {
	return strings.Join(strings.Fields(s), "_")
}

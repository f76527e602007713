// Package slugs builds URL slugs for catalog records.
package slugs

import (
	"fmt"
	"time"

	"github.com/gosimple/slug"
)

// Make returns slug(name) suffixed with the microsecond part of t so two
// records with the same name still get distinct slugs.
func Make(name string, t time.Time) string {
	base := slug.Make(name)
	if base == "" {
		base = "item"
	}
	return fmt.Sprintf("%s-%d", base, t.Nanosecond()/int(time.Microsecond))
}

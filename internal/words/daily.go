package words

import (
	"time"

	"github.com/robalobadob/wordtia/internal/daily"
)

// Daily picks the same word for everyone on a given UTC date.
// The salt keeps the schedule from being derivable by other clients.
type Daily struct {
	list []string
	salt string
	now  func() time.Time
}

// NewDaily builds a Daily source. A nil clock means time.Now.
func NewDaily(list []string, salt string, now func() time.Time) (*Daily, error) {
	if len(list) == 0 {
		return nil, ErrEmptyList
	}
	if now == nil {
		now = time.Now
	}
	return &Daily{list: append([]string(nil), list...), salt: salt, now: now}, nil
}

// Word implements Source.
func (d *Daily) Word() (string, error) {
	return d.list[daily.WordIndex(d.now(), d.salt, len(d.list))], nil
}

// Date is the key of the day Word currently resolves to.
func (d *Daily) Date() string { return daily.DateKey(d.now()) }

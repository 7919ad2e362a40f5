// internals/cache/cache.go
package cache

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

/* ==========================
   Read-through cache keys
   ==========================
   book:<id>                     single book view
   books:visible:<caller>:<page>:<per>
   books:owned:<caller>:<page>:<per>

   Every mutating operation on a book (create, flag toggles, cover upload,
   borrow/return/approve, feedback submit) must call InvalidateBook before
   returning; listing entries are dropped wholesale because a flag or
   rating change shifts what every listing page contains.
*/

const (
	listVisiblePrefix = "books:visible:"
	listOwnedPrefix   = "books:owned:"
)

type Store struct {
	c *gocache.Cache
}

func New(ttl time.Duration) *Store {
	return &Store{c: gocache.New(ttl, 2*ttl)}
}

func BookKey(id uuid.UUID) string {
	return "book:" + id.String()
}

func VisibleKey(callerID uuid.UUID, page, perPage int) string {
	return fmt.Sprintf("%s%s:%d:%d", listVisiblePrefix, callerID, page, perPage)
}

func OwnedKey(callerID uuid.UUID, page, perPage int) string {
	return fmt.Sprintf("%s%s:%d:%d", listOwnedPrefix, callerID, page, perPage)
}

func (s *Store) Get(key string) (any, bool) {
	if s == nil {
		return nil, false
	}
	return s.c.Get(key)
}

func (s *Store) Set(key string, value any) {
	if s == nil {
		return
	}
	s.c.SetDefault(key, value)
}

// InvalidateBook drops the book entry plus all listing entries.
func (s *Store) InvalidateBook(id uuid.UUID) {
	if s == nil {
		return
	}
	s.c.Delete(BookKey(id))
	s.InvalidateListings()
}

func (s *Store) InvalidateListings() {
	if s == nil {
		return
	}
	for key := range s.c.Items() {
		if strings.HasPrefix(key, listVisiblePrefix) || strings.HasPrefix(key, listOwnedPrefix) {
			s.c.Delete(key)
		}
	}
}

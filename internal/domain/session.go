package domain

import (
	"sync"

	"github.com/puzpuzpuz/xsync"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/client"
)

// DraftSession is the in-memory state of one entry's live draft. It is
// process-local and can always be rebuilt from the persisted picks, so
// losing it on restart only costs the current round's offered options.
type DraftSession struct {
	mutex sync.Mutex

	EntryID      string
	TournamentID string
	Round        int
	Options      []client.Asset
	Owned        map[string]struct{}
}

func (s *DraftSession) hasOption(assetID string) (client.Asset, bool) {
	for _, option := range s.Options {
		if option.ID == assetID {
			return option, true
		}
	}

	return client.Asset{}, false
}

type sessionStore struct {
	sessions *xsync.MapOf[string, *DraftSession]
}

func newSessionStore() *sessionStore {
	return &sessionStore{sessions: xsync.NewMapOf[*DraftSession]()}
}

func (s *sessionStore) load(entryID string) (*DraftSession, bool) {
	return s.sessions.Load(entryID)
}

func (s *sessionStore) loadOrStore(session *DraftSession) (*DraftSession, bool) {
	return s.sessions.LoadOrStore(session.EntryID, session)
}

func (s *sessionStore) delete(entryID string) {
	s.sessions.Delete(entryID)
}

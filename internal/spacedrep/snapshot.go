package spacedrep

import (
	"context"
	"encoding/json"
	"fmt"
)

// LoadStore reads the persisted progress store. A missing, unreadable or
// corrupt blob yields an empty store.
func (s *Scheduler) LoadStore(ctx context.Context) ProgressStore {
	raw, err := s.storage.Get(ctx, StorageKey)
	if err != nil || len(raw) == 0 {
		return make(ProgressStore)
	}
	ps, err := decodeStore(raw)
	if err != nil {
		return make(ProgressStore)
	}
	return ps
}

// SaveStore persists the full progress store. Failures are reported on the
// warning writer and otherwise ignored.
func (s *Scheduler) SaveStore(ctx context.Context, ps ProgressStore) {
	raw, err := json.Marshal(ps)
	if err != nil {
		s.warnf("failed to encode progress: %v", err)
		return
	}
	if err := s.storage.Put(ctx, StorageKey, raw); err != nil {
		s.warnf("failed to save progress: %v", err)
	}
}

// decodeStore parses a persisted blob and fills in the maps and identity
// fields older or hand-edited blobs may lack.
func decodeStore(raw []byte) (ProgressStore, error) {
	var ps ProgressStore
	if err := json.Unmarshal(raw, &ps); err != nil {
		return nil, fmt.Errorf("decode progress: %w", err)
	}
	if ps == nil {
		ps = make(ProgressStore)
	}
	for setID, sp := range ps {
		if sp == nil {
			delete(ps, setID)
			continue
		}
		if sp.SetID == "" {
			sp.SetID = setID
		}
		if sp.Cards == nil {
			sp.Cards = make(map[string]*CardProgress)
		}
		for cardID, cp := range sp.Cards {
			if cp == nil {
				delete(sp.Cards, cardID)
				continue
			}
			if cp.CardID == "" {
				cp.CardID = cardID
			}
			if cp.SetID == "" {
				cp.SetID = setID
			}
		}
	}
	return ps, nil
}

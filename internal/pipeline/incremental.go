package pipeline

import (
	"github.com/fundex/despesas/internal/model"
)

// fromStore returns the mirrored rows for key when the disk cache tracks
// exactly this file version. Store errors are logged and treated as a miss.
func (l *Loader) fromStore(key CacheKey) ([]model.LedgerRow, bool) {
	if l.store == nil {
		return nil, false
	}

	ok, err := l.store.Lookup(key.Path, key.MtimeNs, key.Size)
	if err != nil {
		l.log.Warn("disk cache lookup failed", "file", key.Path, "err", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}

	rows, err := l.store.LoadLedger(key.Path)
	if err != nil {
		l.log.Warn("disk cache read failed", "file", key.Path, "err", err)
		return nil, false
	}
	return rows, true
}

// toStore writes freshly parsed rows through to the disk cache.
func (l *Loader) toStore(key CacheKey, rows []model.LedgerRow) {
	if l.store == nil {
		return
	}
	if err := l.store.SaveLedger(key.Path, key.MtimeNs, key.Size, rows); err != nil {
		l.log.Warn("disk cache write failed", "file", key.Path, "err", err)
	}
}

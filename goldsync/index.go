package goldsync

import (
	"context"
	"strings"

	"bitbucket.org/cidacdata/elab_backend/config"
	"bitbucket.org/cidacdata/elab_backend/elab"
	"bitbucket.org/cidacdata/elab_backend/models"
	"github.com/sirupsen/logrus"
)

// ArticleIndex is the in-memory lookup structure one diff run matches
// against: dbo.t_Rossetto keyed by every normalized variant of CODARTFO,
// plus the set of all EANs known to dbo.t_t_Ean. It is rebuilt fresh from
// the current snapshots for every run; snapshots are small enough that a
// full rebuild beats incremental maintenance and cannot go stale.
type ArticleIndex struct {
	byCode map[string]*ArticleMaster
	eans   map[string]struct{}
}

// BuildIndex constructs the index from decoded snapshot payloads. When two
// articles normalize to the same key the later row wins, matching the
// legacy import order semantics; collisions are logged at debug level.
func BuildIndex(articlePayloads []map[string]any, eanPayloads []map[string]any) *ArticleIndex {
	logger := config.GetLogger()

	idx := &ArticleIndex{
		byCode: make(map[string]*ArticleMaster, len(articlePayloads)),
		eans:   make(map[string]struct{}, len(eanPayloads)),
	}

	for _, p := range articlePayloads {
		art := articleFromPayload(p)
		for _, key := range elab.NormalizeCode(art.CodArtFo) {
			if prev, exists := idx.byCode[key]; exists && logger != nil && prev.CodArtFo != art.CodArtFo {
				logger.WithFields(logrus.Fields{
					"module": "goldsync",
					"key":    key,
					"kept":   art.CodArtFo,
					"lost":   prev.CodArtFo,
				}).Debug("duplicate supplier code in gold snapshot; last row wins")
			}
			idx.byCode[key] = &art
		}
	}

	for _, p := range eanPayloads {
		ean := payloadString(p, "EANA", "EAN", "Ean")
		ean = strings.TrimSpace(ean)
		if ean != "" {
			idx.eans[ean] = struct{}{}
		}
	}

	return idx
}

// LoadIndex builds the index from the snapshots currently on disk.
func LoadIndex(ctx context.Context) (*ArticleIndex, error) {
	articles, err := models.LoadSnapshotPayloads(ctx, TableRossetto)
	if err != nil {
		return nil, err
	}
	eans, err := models.LoadSnapshotPayloads(ctx, TableEan)
	if err != nil {
		return nil, err
	}
	return BuildIndex(articles, eans), nil
}

// Get tries every normalized variant of code in order and returns the
// first matching article, or nil when no variant is indexed.
func (idx *ArticleIndex) Get(code string) *ArticleMaster {
	for _, key := range elab.NormalizeCode(code) {
		if art, ok := idx.byCode[key]; ok {
			return art
		}
	}
	return nil
}

// HasEan reports whether the Gold EAN registry knows the given code.
func (idx *ArticleIndex) HasEan(ean string) bool {
	_, ok := idx.eans[strings.TrimSpace(ean)]
	return ok
}

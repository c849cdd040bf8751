// Package projection fans a single source paper out into the denormalized
// item set that backs every query pattern.
package projection

import (
	"PaperIndexer/internal/domain"
	"PaperIndexer/internal/keywords"
)

// Projector turns papers into derived storage items. It is a pure
// transform; keys are deterministic functions of the paper's fields, so
// projecting the same paper twice yields identical items.
type Projector struct {
	extractor *keywords.Extractor
}

// New wires the keyword extractor used for keyword rows and the detail
// payload.
func New(extractor *keywords.Extractor) *Projector {
	if extractor == nil {
		extractor = keywords.New(keywords.DefaultLimit)
	}
	return &Projector{extractor: extractor}
}

// Project returns the full ordered item set for one paper: the detail row,
// one row per category, one per author, and one per distinct keyword.
func (p *Projector) Project(paper domain.Paper) []domain.Item {
	date := domain.PublishedDate(paper.Published)
	kws := p.extractor.Extract(paper.Abstract)
	sortKey := domain.SortKey(date, paper.ArxivID)

	items := make([]domain.Item, 0, 1+len(paper.Categories)+len(paper.Authors)+len(kws))

	items = append(items, domain.Item{
		PK:         domain.PaperPK(paper.ArxivID),
		SK:         domain.DetailSK,
		GSI3PK:     domain.PaperPK(paper.ArxivID),
		GSI3SK:     domain.DetailSK,
		ArxivID:    paper.ArxivID,
		Title:      paper.Title,
		Authors:    paper.Authors,
		Abstract:   paper.Abstract,
		Categories: paper.Categories,
		Keywords:   kws,
		Published:  paper.Published,
		ItemType:   domain.TypePaperDetail,
	})

	for _, cat := range paper.Categories {
		items = append(items, domain.Item{
			PK:         domain.CategoryPK(cat),
			SK:         sortKey,
			ArxivID:    paper.ArxivID,
			Title:      paper.Title,
			Authors:    paper.Authors,
			Abstract:   paper.Abstract,
			Categories: paper.Categories,
			Keywords:   kws,
			Published:  paper.Published,
			ItemType:   domain.TypeCategory,
		})
	}

	for _, author := range paper.Authors {
		items = append(items, domain.Item{
			PK:         domain.AuthorItemPK(author),
			SK:         sortKey,
			GSI1PK:     domain.AuthorGSI(author),
			GSI1SK:     sortKey,
			ArxivID:    paper.ArxivID,
			Title:      paper.Title,
			Categories: paper.Categories,
			Published:  paper.Published,
			ItemType:   domain.TypeAuthor,
		})
	}

	seen := map[string]struct{}{}
	for _, kw := range kws {
		if _, dup := seen[kw]; dup {
			continue
		}
		seen[kw] = struct{}{}
		items = append(items, domain.Item{
			PK:         domain.KeywordItemPK(kw),
			SK:         sortKey,
			GSI2PK:     domain.KeywordGSI(kw),
			GSI2SK:     sortKey,
			ArxivID:    paper.ArxivID,
			Title:      paper.Title,
			Categories: paper.Categories,
			Published:  paper.Published,
			ItemType:   domain.TypeKeyword,
		})
	}

	return items
}

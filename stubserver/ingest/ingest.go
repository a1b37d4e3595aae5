package ingest

import (
	"log"

	"newsdeck/stubserver/dedup"
	"newsdeck/stubserver/store"
)

// Run fetches one feed, drops items already seen by the dedup filter,
// extracts full content for the remainder, and upserts them into the
// store. It returns the number of new articles added.
func Run(s *store.Store, filter dedup.Filter, feedInput string, count int) (int, error) {
	feedURL := ResolveFeedURL(feedInput)
	articles, err := FetchFeed(feedURL, count)
	if err != nil {
		return 0, err
	}
	log.Printf("fetched %d items from %s", len(articles), feedURL)

	fresh := articles[:0]
	for _, a := range articles {
		fp, err := dedup.Fingerprint(a)
		if err != nil {
			continue
		}
		seen, err := filter.Seen(fp)
		if err != nil {
			log.Printf("dedup check failed for %s: %v", a.URL, err)
			seen = false
		}
		if seen {
			continue
		}
		if err := filter.Add(fp); err != nil {
			log.Printf("dedup add failed for %s: %v", a.URL, err)
		}
		fresh = append(fresh, a)
	}
	log.Printf("%d items survived deduplication", len(fresh))

	ExtractAllContent(fresh)

	added := 0
	for _, a := range fresh {
		if err := s.UpsertArticle(*a); err != nil {
			log.Printf("failed to store %s: %v", a.ID, err)
			continue
		}
		added++
	}
	return added, nil
}

// Package resolver turns the raw version records of one package name into
// the ordered aggregate that backs its page.
package resolver

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/resf/repoview/internal/models"
	"github.com/resf/repoview/internal/rpmver"
	"github.com/resf/repoview/internal/utils"
)

// maxChangelogEntries caps how many changelog items a package page shows
// per version.
const maxChangelogEntries = 2

// Resolve deduplicates and orders every known build of a package and
// derives the shared page-level fields from the newest one. A name with no
// records resolves to nil; callers treat that as an unresolvable group
// member, not an error.
func Resolve(name string, records []models.VersionRecord) *models.PackageAggregate {
	if len(records) == 0 {
		return nil
	}

	// collapse exact (epoch, version, release, arch) duplicates, keeping
	// the first occurrence
	seen := make(map[models.VersionKey]bool, len(records))
	distinct := make([]models.VersionRecord, 0, len(records))
	for _, rec := range records {
		if seen[rec.Key] {
			continue
		}
		seen[rec.Key] = true
		distinct = append(distinct, rec)
	}

	// newest EVR first; records sharing an EVR (multilib) keep their
	// ingestion order
	sort.SliceStable(distinct, func(i, j int) bool {
		return rpmver.Compare(distinct[i].Key, distinct[j].Key) > 0
	})

	agg := &models.PackageAggregate{
		Name:     name,
		Filename: utils.Slug(name) + ".html",
	}

	for i, rec := range distinct {
		if i == 0 {
			agg.Summary = rec.Summary
			agg.Description = rec.Description
			agg.URL = rec.URL
			agg.License = rec.License
			agg.SourceRPM = rec.SourceRPM
			agg.Vendor = rec.Vendor
		}

		agg.Versions = append(agg.Versions, models.VersionInfo{
			Epoch:          rec.Key.Epoch,
			Version:        rec.Key.Version,
			Release:        rec.Key.Release,
			Arch:           rec.Key.Arch,
			Buildtime:      rec.Buildtime,
			Size:           HumanSize(rec.Size),
			Location:       rec.Location,
			RemoteLocation: rec.RemoteLocation,
			Changelog:      trimChangelog(rec.Changelog),
			Files:          rec.Files,
		})
	}

	return agg
}

// HumanSize renders a byte count in Bytes, KiB or MiB. The quotient stays
// a raw float; pages show whatever precision the division produced.
func HumanSize(numbytes int64) string {
	if numbytes < 1024 {
		return fmt.Sprintf("%d Bytes", numbytes)
	}
	kilos := float64(numbytes) / 1024
	if kilos/1024 < 1 {
		return humanQuantity(kilos) + " KiB"
	}
	return humanQuantity(kilos/1024) + " MiB"
}

// humanQuantity renders a size quotient keeping a decimal part, so exact
// multiples read "1.0 KiB" rather than "1 KiB".
func humanQuantity(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// trimChangelog keeps the first entries of a changelog and strips email
// addresses off the author lines.
func trimChangelog(entries []models.ChangelogEntry) []models.ChangelogEntry {
	if len(entries) > maxChangelogEntries {
		entries = entries[:maxChangelogEntries]
	}

	trimmed := make([]models.ChangelogEntry, 0, len(entries))
	for _, entry := range entries {
		entry.Author = trimAuthor(entry.Author)
		trimmed = append(trimmed, entry)
	}
	return trimmed
}

// trimAuthor cuts an author string at the first '<'. Authors without an
// email part pass through untouched.
func trimAuthor(author string) string {
	if i := strings.Index(author, "<"); i >= 0 {
		return strings.TrimSpace(author[:i])
	}
	return author
}

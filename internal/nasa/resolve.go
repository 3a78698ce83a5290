package nasa

import (
	"net/url"
	"regexp"
	"strings"
)

// Resolution tiers inferred from the archive's filename convention.
const (
	tierNone     = 0
	tierThumb    = 1
	tierSmall    = 2
	tierMedium   = 3
	tierLarge    = 4
	tierOriginal = 5
)

var imageExtRe = regexp.MustCompile(`(?i)\.(jpg|jpeg|png)$`)

// scoreURL ranks a file link by the resolution keyword in its filename.
// Unscored links rank lowest.
func scoreURL(link string) int {
	lower := strings.ToLower(link)
	switch {
	case strings.Contains(lower, "~orig"):
		return tierOriginal
	case strings.Contains(lower, "~large"):
		return tierLarge
	case strings.Contains(lower, "~medium"):
		return tierMedium
	case strings.Contains(lower, "~small"):
		return tierSmall
	case strings.Contains(lower, "~thumb"):
		return tierThumb
	default:
		return tierNone
	}
}

// imageURLs is a tiered image link selection.
type imageURLs struct {
	preview string
	display string
	full    string
}

// resolveImageURLs filters a manifest down to image links, resolves each to
// an absolute HTTPS URL relative to the manifest location, and selects the
// tiered set. Full deliberately prefers the large variant over the original:
// originals can be hundreds of megabytes, and large is plenty for a
// full-screen view. Returns nil when no usable image link exists.
func resolveImageURLs(manifest []string, manifestURL string) *imageURLs {
	base, err := url.Parse(ForceHTTPS(manifestURL))
	if err != nil {
		return nil
	}

	var links []string
	for _, path := range manifest {
		if !imageExtRe.MatchString(path) {
			continue
		}
		ref, err := url.Parse(path)
		if err != nil {
			continue
		}
		abs := base.ResolveReference(ref)
		abs.Scheme = "https"
		links = append(links, abs.String())
	}
	if len(links) == 0 {
		return nil
	}

	findByScore := func(score int) string {
		for _, link := range links {
			if scoreURL(link) == score {
				return link
			}
		}
		return ""
	}

	best := links[0]
	for _, link := range links[1:] {
		if scoreURL(link) > scoreURL(best) {
			best = link
		}
	}

	full := findByScore(tierLarge)
	if full == "" {
		full = findByScore(tierOriginal)
	}
	if full == "" {
		full = best
	}

	display := findByScore(tierMedium)
	if display == "" {
		display = findByScore(tierSmall)
	}
	if display == "" {
		display = full
	}

	preview := findByScore(tierThumb)
	if preview == "" {
		preview = display
	}

	return &imageURLs{preview: preview, display: display, full: full}
}

// selectVideoURL picks a playable video link from a manifest: the
// mobile-optimized variant first, then the small one, then any mp4. Returns
// "" when nothing is playable. No tiering exists for video.
func selectVideoURL(manifest []string) string {
	var mobile, small, any string
	for _, link := range manifest {
		if !strings.HasSuffix(strings.ToLower(link), ".mp4") {
			continue
		}
		lower := strings.ToLower(link)
		switch {
		case mobile == "" && strings.Contains(lower, "~mobile"):
			mobile = link
		case small == "" && strings.Contains(lower, "~small"):
			small = link
		case any == "":
			any = link
		}
	}

	switch {
	case mobile != "":
		return ForceHTTPS(mobile)
	case small != "":
		return ForceHTTPS(small)
	case any != "":
		return ForceHTTPS(any)
	default:
		return ""
	}
}

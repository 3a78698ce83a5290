package nasa

import "testing"

func TestScoreURL(t *testing.T) {
	tests := []struct {
		name string
		link string
		want int
	}{
		{"original", "https://x/img~orig.jpg", tierOriginal},
		{"large", "https://x/img~large.jpg", tierLarge},
		{"medium", "https://x/img~medium.jpg", tierMedium},
		{"small", "https://x/img~small.jpg", tierSmall},
		{"thumb", "https://x/img~thumb.jpg", tierThumb},
		{"case insensitive", "https://x/IMG~LARGE.JPG", tierLarge},
		{"unscored", "https://x/img.jpg", tierNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scoreURL(tt.link); got != tt.want {
				t.Errorf("scoreURL(%q) = %d, want %d", tt.link, got, tt.want)
			}
		})
	}
}

func TestResolveImageURLs_TierSelection(t *testing.T) {
	manifest := []string{
		"https://images-assets.nasa.gov/image/x/x~thumb.jpg",
		"https://images-assets.nasa.gov/image/x/x~medium.jpg",
		"https://images-assets.nasa.gov/image/x/x~large.jpg",
		"https://images-assets.nasa.gov/image/x/x~orig.jpg",
		"https://images-assets.nasa.gov/image/x/x.json",
	}

	got := resolveImageURLs(manifest, "https://images-api.nasa.gov/asset/x")
	if got == nil {
		t.Fatal("resolveImageURLs() = nil")
	}
	// Full prefers large over the oversized original.
	if got.full != "https://images-assets.nasa.gov/image/x/x~large.jpg" {
		t.Errorf("full = %q, want the ~large link", got.full)
	}
	if got.display != "https://images-assets.nasa.gov/image/x/x~medium.jpg" {
		t.Errorf("display = %q, want the ~medium link", got.display)
	}
	if got.preview != "https://images-assets.nasa.gov/image/x/x~thumb.jpg" {
		t.Errorf("preview = %q, want the ~thumb link", got.preview)
	}
}

func TestResolveImageURLs_Fallbacks(t *testing.T) {
	t.Run("only original", func(t *testing.T) {
		got := resolveImageURLs([]string{"https://x/a~orig.jpg"}, "https://x/asset")
		if got == nil {
			t.Fatal("nil")
		}
		if got.full != "https://x/a~orig.jpg" || got.display != got.full || got.preview != got.full {
			t.Errorf("all tiers should fall back to the single link: %+v", got)
		}
	})

	t.Run("small stands in for display", func(t *testing.T) {
		got := resolveImageURLs([]string{
			"https://x/a~large.jpg",
			"https://x/a~small.jpg",
		}, "https://x/asset")
		if got == nil {
			t.Fatal("nil")
		}
		if got.display != "https://x/a~small.jpg" {
			t.Errorf("display = %q, want ~small", got.display)
		}
		if got.preview != got.display {
			t.Errorf("preview = %q, want display fallback", got.preview)
		}
	})

	t.Run("unscored links still resolve", func(t *testing.T) {
		got := resolveImageURLs([]string{"https://x/plain.jpg"}, "https://x/asset")
		if got == nil || got.full != "https://x/plain.jpg" {
			t.Errorf("got %+v", got)
		}
	})
}

func TestResolveImageURLs_RelativeAndInsecureLinks(t *testing.T) {
	manifest := []string{
		"image/x/x~large.jpg",
		"http://images-assets.nasa.gov/image/x/x~thumb.jpg",
	}

	got := resolveImageURLs(manifest, "http://images-api.nasa.gov/asset/x")
	if got == nil {
		t.Fatal("resolveImageURLs() = nil")
	}
	if got.full != "https://images-api.nasa.gov/asset/image/x/x~large.jpg" {
		t.Errorf("relative link not resolved against manifest URL: %q", got.full)
	}
	if got.preview != "https://images-assets.nasa.gov/image/x/x~thumb.jpg" {
		t.Errorf("absolute link not upgraded to https: %q", got.preview)
	}
}

func TestResolveImageURLs_NoImages(t *testing.T) {
	manifest := []string{"https://x/a.json", "https://x/b.mp4", "https://x/c.srt"}
	if got := resolveImageURLs(manifest, "https://x/asset"); got != nil {
		t.Errorf("expected nil for manifest without images, got %+v", got)
	}
	if got := resolveImageURLs(nil, "https://x/asset"); got != nil {
		t.Errorf("expected nil for empty manifest, got %+v", got)
	}
}

func TestSelectVideoURL(t *testing.T) {
	tests := []struct {
		name     string
		manifest []string
		want     string
	}{
		{
			"prefers mobile",
			[]string{"https://x/v~orig.mp4", "https://x/v~small.mp4", "https://x/v~mobile.mp4"},
			"https://x/v~mobile.mp4",
		},
		{
			"then small",
			[]string{"https://x/v~orig.mp4", "https://x/v~small.mp4"},
			"https://x/v~small.mp4",
		},
		{
			"then any mp4",
			[]string{"https://x/v.srt", "https://x/v~orig.mp4"},
			"https://x/v~orig.mp4",
		},
		{
			"upgrades to https",
			[]string{"http://x/v~mobile.mp4"},
			"https://x/v~mobile.mp4",
		},
		{
			"nothing playable",
			[]string{"https://x/v.srt", "https://x/v.jpg"},
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := selectVideoURL(tt.manifest); got != tt.want {
				t.Errorf("selectVideoURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestForceHTTPS(t *testing.T) {
	if got := ForceHTTPS("http://a/b"); got != "https://a/b" {
		t.Errorf("ForceHTTPS = %q", got)
	}
	if got := ForceHTTPS("https://a/b"); got != "https://a/b" {
		t.Errorf("ForceHTTPS changed a secure URL: %q", got)
	}
}

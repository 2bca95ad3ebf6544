package pipeline

import (
	"context"
	"encoding/base64"
	"net/http"
	"regexp"
	"sort"
	"strings"
)

// AssetLookup abstracts the caller-supplied asset snapshot. Names returns
// the full key set so the binder can run its substring fallback
// deterministically.
type AssetLookup interface {
	Lookup(name string) (data []byte, ok bool)
	Names() []string
}

// includegraphicsPattern matches image-inclusion directives with an optional
// options argument.
var includegraphicsPattern = regexp.MustCompile(`\\includegraphics(?:\[[^\]]*\])?\{([^}]*)\}`)

// rasterExtensions are tried, in order, when an exact key match fails.
var rasterExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp", ".svg"}

var mimeByExtension = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
}

// AssetBinder replaces image directives with resolved data references.
// Binding never fails: an unresolvable asset degrades to an inline
// placeholder and the rest of the document is untouched.
type AssetBinder struct {
	assets AssetLookup
	names  []string // sorted snapshot of the key set, built once per pass
}

// NewAssetBinder snapshots the resolver's key set for one compile pass.
func NewAssetBinder(assets AssetLookup) *AssetBinder {
	names := append([]string(nil), assets.Names()...)
	sort.Strings(names)
	return &AssetBinder{assets: assets, names: names}
}

// Bind rewrites every image directive in place.
func (b *AssetBinder) Bind(ctx context.Context, body string) string {
	if ctx.Err() != nil {
		return body
	}
	return includegraphicsPattern.ReplaceAllStringFunc(body, func(directive string) string {
		target := includegraphicsPattern.FindStringSubmatch(directive)[1]
		base := baseName(target)

		name, data, ok := b.resolve(base)
		if !ok {
			return ErrorMarker("missing image: " + base)
		}
		return `<img class="tex-figure" alt="` + base + `" src="` + dataURI(name, data) + `"/>`
	})
}

// resolve applies the fixed lookup order: exact key match, key with common
// raster extensions appended, first key containing the basename.
func (b *AssetBinder) resolve(base string) (string, []byte, bool) {
	if data, ok := b.assets.Lookup(base); ok {
		return base, data, true
	}
	for _, ext := range rasterExtensions {
		if data, ok := b.assets.Lookup(base + ext); ok {
			return base + ext, data, true
		}
	}
	for _, name := range b.names {
		if strings.Contains(name, base) {
			if data, ok := b.assets.Lookup(name); ok {
				return name, data, true
			}
		}
	}
	return "", nil, false
}

func baseName(target string) string {
	target = strings.TrimSpace(strings.ReplaceAll(target, `\`, "/"))
	if i := strings.LastIndex(target, "/"); i >= 0 {
		target = target[i+1:]
	}
	return target
}

func dataURI(name string, data []byte) string {
	mimeType := ""
	if i := strings.LastIndex(name, "."); i >= 0 {
		mimeType = mimeByExtension[strings.ToLower(name[i:])]
	}
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

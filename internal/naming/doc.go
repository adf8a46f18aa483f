// Package naming turns user-supplied paths into canonical application names.
//
// It holds the extension classifier (archive vs numeric split-part
// extensions), platform-path helpers with dot-file aware extension rules,
// the name resolver, and keyword matching used to find an app's files and
// directories by name.
//
// The resolver strips a numeric split-part suffix before an archive
// extension: App.7z.001 -> App.7z -> App. The reverse order would stop at
// the outer "001", which is not an archive type.
package naming

// Package nubepurge removes unused rules from a utility-class stylesheet.
//
// The project's source files are scanned for literal class tokens in
// class="..." and className="..." attributes. Every top-level rule of the
// stylesheet whose selector is not referenced is dropped; media blocks are
// filtered rule by rule and removed when nothing inside survives.
//
// # Purging
//
//	result, err := nubepurge.Purge(ctx, nubepurge.Config{
//		ContentDir: "src",
//		SourcePath: "styles/system.css",
//		Minify:     true,
//	})
//
// The output (styles/system.purged.css by default) starts with a generated
// header comment recording the time of the run and the size reduction.
//
// # Watching
//
//	err := nubepurge.Watch(ctx, config, nubepurge.WatchOptions{
//		OnResult: func(r *nubepurge.Result, err error) { ... },
//	})
//
// # CLI Tool
//
//	go install github.com/nube-system/nubepurge/cmd/nubepurge@latest
package nubepurge

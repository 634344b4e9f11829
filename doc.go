// Package quads approximates raster images with a quadtree of flat-colored
// rectangles.
//
// # Overview
//
// A Model starts with one region covering the whole image. Each Step takes
// the region whose flat color is currently the worst approximation, splits it
// into four quadrants and analyzes each of them. After n steps the image is
// represented by 3n+1 rectangles that tile it exactly.
//
// # Quick Start
//
//	img, _ := png.Decode(f)
//
//	m, err := quads.FromImage(img)
//	if err != nil {
//	    return err
//	}
//	m.Steps(1024)
//
//	// Composite the leaves at the source size, with a grid between regions
//	out := m.Render(0, 0, true)
//
// # Region statistics
//
// Every region is summarized from three 256-bucket channel histograms. Its
// color is the truncated mean of each channel and its error blends the
// per-channel RMS deviations as 0.3·R + 0.6·G + 1.0·B + 0.1.
//
// # Priority
//
// Leaves wait in a Frontier ordered by error × area^¼. Regions with a side
// below the small size (4 pixels by default) rank behind all larger regions,
// and regions with a side below 2 pixels are never split.
//
// # Concurrency
//
// A Model is single-threaded. WithExecutor lets the four quadrants of a split
// be analyzed concurrently; Snapshot returns value copies that may be handed
// to other goroutines while the model keeps stepping. The animate package
// builds a frame pipeline on top of that.
package quads

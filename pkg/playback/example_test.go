package playback_test

import (
	"fmt"
	"image"

	"github.com/go-anima/anima/pkg/frames"
	"github.com/go-anima/anima/pkg/playback"
	"github.com/go-anima/anima/pkg/timing"
)

// This example shows how to drive an animated GIF with a display link.
func ExampleDriver() {
	link := timing.NewDisplayLink(timing.DefaultRefreshInterval)
	driver := playback.NewDriver(link, nil, image.Pt(200, 200), frames.FitContain)
	defer driver.Dispose()

	// Play three full loops, then stop and notify.
	driver.SetMaxLoopCount(3)
	driver.SetDelegate(playback.DelegateFunc(func(d *playback.Driver) {
		fmt.Println("playback finished")
	}))

	var gifBytes []byte // encoded GIF data from a file or bundle
	driver.Animate(gifBytes)
}

// This example shows preparing content without starting playback.
func ExampleDriver_prepareThenStart() {
	link := timing.NewManualLink()
	driver := playback.NewDriver(link, nil, image.Pt(64, 64), frames.FitCover)
	defer driver.Dispose()

	driver.PrepareForAnimationNamed("assets/spinner.gif")
	// The static first frame is visible now; ticking starts here.
	driver.Start()
}

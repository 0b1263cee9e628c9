// Package renderer drives the per-frame render loop.
package renderer

type Renderer interface {
	// Run the render loop. It only returns if the loop fails, Close is
	// called or the configured frame limit is reached.
	Render() error

	// Ask the render loop to stop after the frame in progress.
	Close()

	// Get render statistics. Safe to call from any thread.
	Stats() FrameStats
}

// Presenter displays the frame that was just drawn. *glfw.Window
// implements it.
type Presenter interface {
	SwapBuffers()
}

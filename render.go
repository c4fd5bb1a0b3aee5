package rt

import "github.com/vecrt/rt/frame"

// Render drives one full frame according to info: it builds a Driver
// sized and wired per info's fields, then renders info's assigned row
// stripe into info.Framebuffer (spec.md §6 "render(info)"). info is
// consumed once; Render allocates a fresh Arena on every call, so a
// caller rendering many frames against the same scene should instead
// build a frame.Driver directly with frame.BuildDriver and call
// RenderStripe repeatedly, reusing it across frames.
func Render(info *frame.Info) error {
	driver, err := frame.BuildDriver(info)
	if err != nil {
		return err
	}
	driver.RenderStripe(info.ThreadIndex, info.ThreadCount, info.FrameW, info.FrameH, info.Framebuffer, info.Cancel)
	return nil
}

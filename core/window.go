package core

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	runtime.LockOSThread()
}

// Window is a hidden GLFW window that exists only to own an OpenGL context.
// This renderer never presents to a surface: every pixel it produces is
// read back into host memory and written out as a PPM file, so the window
// is never shown and never polls input.
type Window struct {
	Handle        *glfw.Window
	Width, Height int
}

// NewWindow brings up an OpenGL 4.1 core-profile context sized to the
// render's output resolution. Framebuffer-sized attachments (the photon
// G-buffer, the tone-mapped target) are allocated independently of the
// window's own unused default framebuffer.
func NewWindow(width, height int) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLAPI)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfw.False)

	handle, err := glfw.CreateWindow(width, height, "volumetrace", nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create GL context: %w", err)
	}

	handle.MakeContextCurrent()

	return &Window{Handle: handle, Width: width, Height: height}, nil
}

func (w *Window) Destroy() {
	w.Handle.Destroy()
	glfw.Terminate()
}

package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// ShadowMap is a depth-only framebuffer rendered from the light's point of view.
type ShadowMap struct {
	FBO          uint32
	DepthTexture uint32
	Size         int32
}

func NewShadowMap(size int32) (*ShadowMap, error) {
	sm := &ShadowMap{Size: size}

	gl.GenTextures(1, &sm.DepthTexture)
	gl.BindTexture(gl.TEXTURE_2D, sm.DepthTexture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.DEPTH_COMPONENT, size, size, 0, gl.DEPTH_COMPONENT, gl.FLOAT, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_BORDER)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_BORDER)
	border := [4]float32{1, 1, 1, 1}
	gl.TexParameterfv(gl.TEXTURE_2D, gl.TEXTURE_BORDER_COLOR, &border[0])
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.GenFramebuffers(1, &sm.FBO)
	gl.BindFramebuffer(gl.FRAMEBUFFER, sm.FBO)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.TEXTURE_2D, sm.DepthTexture, 0)
	gl.DrawBuffer(gl.NONE)
	gl.ReadBuffer(gl.NONE)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		sm.Delete()
		return nil, fmt.Errorf("shadow framebuffer incomplete: 0x%x", status)
	}
	return sm, nil
}

func (sm *ShadowMap) Delete() {
	gl.DeleteFramebuffers(1, &sm.FBO)
	gl.DeleteTextures(1, &sm.DepthTexture)
}

// PostBuffer is the off-screen target of the main pass: a color texture the
// post pass samples and a combined depth/stencil renderbuffer for the outlines.
type PostBuffer struct {
	FBO          uint32
	ColorTexture uint32
	RBO          uint32
	Width        int32
	Height       int32
}

func NewPostBuffer(width, height int32) (*PostBuffer, error) {
	pb := &PostBuffer{Width: width, Height: height}

	gl.GenFramebuffers(1, &pb.FBO)
	gl.BindFramebuffer(gl.FRAMEBUFFER, pb.FBO)

	gl.GenTextures(1, &pb.ColorTexture)
	gl.BindTexture(gl.TEXTURE_2D, pb.ColorTexture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGB, width, height, 0, gl.RGB, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, pb.ColorTexture, 0)

	gl.GenRenderbuffers(1, &pb.RBO)
	gl.BindRenderbuffer(gl.RENDERBUFFER, pb.RBO)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH24_STENCIL8, width, height)
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_STENCIL_ATTACHMENT, gl.RENDERBUFFER, pb.RBO)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		pb.Delete()
		return nil, fmt.Errorf("post framebuffer incomplete: 0x%x", status)
	}
	return pb, nil
}

func (pb *PostBuffer) Delete() {
	gl.DeleteFramebuffers(1, &pb.FBO)
	gl.DeleteTextures(1, &pb.ColorTexture)
	gl.DeleteRenderbuffers(1, &pb.RBO)
}

package renderer

import (
	"PowerOutage/internal/logger"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/anthonynsimon/bild/transform"
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
)

// TextureStats provides debugging information
type TextureStats struct {
	Loaded      int
	CacheHits   int
	CacheMisses int
	Failed      int
}

// TextureManager loads 2D textures and cube maps once per path.
// Load failures are logged and cached as texture 0 so they are reported once.
type TextureManager struct {
	textureCache map[string]uint32
	stats        TextureStats
}

func NewTextureManager() *TextureManager {
	return &TextureManager{textureCache: make(map[string]uint32)}
}

// Texture returns the texture for path, or 0 if it could not be loaded.
func (tm *TextureManager) Texture(path string) uint32 {
	if id, ok := tm.textureCache[path]; ok {
		tm.stats.CacheHits++
		return id
	}
	tm.stats.CacheMisses++

	id, err := tm.load(path)
	if err != nil {
		tm.stats.Failed++
		logger.Log.Error("Failed to load texture", zap.String("path", path), zap.Error(err))
	}
	tm.textureCache[path] = id
	return id
}

func (tm *TextureManager) load(path string) (uint32, error) {
	img, err := decodeImage(path)
	if err != nil {
		return 0, err
	}
	rgba := prepareImage(img, true)

	id := UploadTexture(0, rgba)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	tm.stats.Loaded++
	logger.Log.Info("Texture loaded and cached",
		zap.String("path", path),
		zap.Uint32("textureID", id),
		zap.Int("width", rgba.Rect.Dx()),
		zap.Int("height", rgba.Rect.Dy()))
	return id, nil
}

// CubeMap loads six faces in +X, -X, +Y, -Y, +Z, -Z order. Returns 0 on failure.
func (tm *TextureManager) CubeMap(faces [6]string, flip bool) uint32 {
	key := fmt.Sprint(faces, flip)
	if id, ok := tm.textureCache[key]; ok {
		tm.stats.CacheHits++
		return id
	}
	tm.stats.CacheMisses++

	images := make([]*image.RGBA, len(faces))
	for i, path := range faces {
		img, err := decodeImage(path)
		if err != nil {
			tm.stats.Failed++
			logger.Log.Error("Failed to load cube map face", zap.String("path", path), zap.Error(err))
			tm.textureCache[key] = 0
			return 0
		}
		images[i] = prepareImage(img, flip)
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, id)
	for i, rgba := range images {
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i), 0, gl.RGBA,
			int32(rgba.Rect.Dx()), int32(rgba.Rect.Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Pix))
	}
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)

	tm.stats.Loaded++
	tm.textureCache[key] = id
	logger.Log.Info("Cube map loaded", zap.Strings("faces", faces[:]), zap.Uint32("textureID", id))
	return id
}

func (tm *TextureManager) Stats() TextureStats {
	return tm.stats
}

// Delete frees every texture the manager created.
func (tm *TextureManager) Delete() {
	for path, id := range tm.textureCache {
		if id != 0 {
			gl.DeleteTextures(1, &id)
		}
		delete(tm.textureCache, path)
	}
}

// UploadTexture writes rgba into texture id, creating one when id is 0.
func UploadTexture(id uint32, rgba *image.RGBA) uint32 {
	if id == 0 {
		gl.GenTextures(1, &id)
	}
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(rgba.Rect.Dx()), int32(rgba.Rect.Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Pix))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return id
}

func DeleteTexture(id uint32) {
	if id != 0 {
		gl.DeleteTextures(1, &id)
	}
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// prepareImage converts img to tightly packed RGBA with a zero origin.
// GL samples rows bottom-up, so 2D textures are flipped vertically.
func prepareImage(img image.Image, flip bool) *image.RGBA {
	if flip {
		return transform.FlipV(img)
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// Package imaging provides the decode, channel transform and encode stages used to
// flip normal-map textures between the OpenGL and DirectX green-channel conventions.
//
// # Buffers
//
// A Buffer is the in-memory raster of one decoded texture: 8-bit samples laid out
// row-major as [row][column][channel], with 3 (RGB) or 4 (RGBA) channels decided by
// the source image. Inversion only changes sample values; width, height and channel
// count are preserved from decode to encode.
//
// Two source kinds bypass the Buffer so their layout survives re-encode:
//   - *image.Paletted: the green component of each palette entry is inverted.
//   - *image.NRGBA64 / *image.RGBA64: inversion runs at 16-bit depth.
//
// Grayscale sources have no green channel and are rejected with ErrNoGreenChannel.
//
// # Channel Math
//
// Every green sample g goes through
//
//	normalize:   f = g / 255
//	invert:      f = 1 - f
//	denormalize: g' = round(clamp(f * 255, 0, 255))
//
// so g=0 becomes 255, g=255 becomes 0 and g=128 becomes 127. Applying the inversion
// twice returns the original value for every g in [0,255].
//
// # Formats
//
// Recognized extensions (case-insensitive) are .png, .jpg, .jpeg, .tga, .bmp, .tif
// and .tiff. The container format is chosen from the extension for both decode and
// encode. Codec settings are the library defaults; metadata such as color profiles
// is not carried over.
package imaging

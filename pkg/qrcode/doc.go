// Package qrcode renders QR codes for generated links.
//
// Generate returns PNG bytes and GenerateBase64Image a data URI. Both use
// medium error correction and fall back to DefaultSize when size is not
// positive.
//
//	link, _ := r.Generate("app://item/:id", 42)
//	png, err := qrcode.Generate(link, 256)
//
// Terminal prints the code as text blocks, which the linkroute CLI uses when
// no output file is given.
package qrcode

// Package wav reads and writes uncompressed PCM audio in the RIFF/WAVE
// container.
//
// The package is split into three independent layers:
//
//   - ReadContainer / WriteContainer walk the RIFF chunks and move the fmt
//     chunk and the raw data chunk payload in and out of a Container.
//   - DecodeSamples / EncodeSamples convert between interleaved 16, 24 and
//     32-bit integer or 32-bit IEEE float payloads and per-channel Sample
//     sequences.
//   - ReadMetadata scans LIST/INFO chunks for title, artist, album, date,
//     genre and comment.
//
// Decode, ReadFile, Encode and WriteFile compose the three. Metadata is best
// effort: a broken INFO list never fails Decode.
package wav

// Package extract reads the slide text of presentation files.
//
// The [Extractor] interface has one variant per presentation format, chosen
// by file extension through [FormatOf]:
//
//   - [PPTX] : modern Office Open XML decks, read directly from the zip archive
//   - [PPT] : legacy binary decks, converted out of process by LibreOffice and then read as .pptx
//
// [Registry] dispatches on the extension and turns every failure into a
// [shared.ExtractionError] so callers can record it per file.
//
// The legacy path owns an external process. Each conversion runs inside a
// [Session] that is always closed, removing its private LibreOffice profile and
// output directory even when the conversion fails.
package extract

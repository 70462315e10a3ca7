// Package download implements the orchestration core: it verifies external
// tool availability, invokes yt-dlp with the right format and
// post-processing arguments for the requested mode, streams progress back
// to the attached front end, and maps failures into the error taxonomy.
package download

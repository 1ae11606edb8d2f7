// Package atlas reads texture atlas descriptors, the JSON documents that
// sprite packers such as TexturePacker write next to a packed sheet.
//
// Packers disagree on details. The frame list may be an array of frame
// objects, or an object keyed by frame name; the frame rectangle may be
// called "frame", "rect" or "sourceRect"; and so on. Parse accepts all of
// these and returns a Descriptor whose Frames are in a single canonical
// form, in the same order as they appeared in the document.
//
// Frames that lack a usable rectangle are not an error. They are reported
// in Descriptor.Skipped and left out of Frames.
package atlas

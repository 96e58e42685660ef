// Package ignore keeps the worktree container directory pattern in the
// user's global git ignore file.
//
// The ignore file location comes from git's global core.excludesfile
// setting; when unset, a default per-user path is chosen and written
// back to the setting so later tools agree on the location. The file is
// only ever appended to — existing lines are never rewritten — and the
// append is guarded by an exact full-line match, so running the
// operation any number of times leaves exactly one pattern line.
package ignore

// Package thumbkey derives freedesktop.org thumbnail cache keys.
//
// A thumbnail for a file is stored as <key>.png, where key is the lower-case
// hex MD5 digest of the file's canonical file:// URI:
//
//	/home/me/a b.jpg -> file:///home/me/a%20b.jpg -> 2f3c...e1.png
//
// URIs are escaped the way GLib's g_filename_to_uri does, since most
// thumbnailers that write the cache are built on it. Anything outside the
// unreserved set and "!$&'()*+,;=:@/" is percent-encoded with upper-case hex.
package thumbkey

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package idgen generates identifiers, slugs, and file names.

# Record IDs

	id := idgen.NewID()  // UUID v4 string

# Portfolio Slugs

	idgen.Slugify("Jane Q. Doe!")  // "jane-q-doe"

# Upload Names

Local files get a timestamped random name that keeps the extension:

	name, err := idgen.UploadName("beach.JPG", time.Now())  // "1718000000000-042137991.jpg"

Cloud objects get a UUID key under their category:

	key := idgen.ObjectKey("photos", "beach.jpg")  // "uploads/photos/<uuid>.jpg"

# IP Hashing

For privacy-preserving analytics:

	hash := idgen.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package idgen

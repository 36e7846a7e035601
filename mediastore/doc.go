// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package mediastore stores uploaded media binaries.

Two backends implement Store:

  - LocalStore writes to <dir>/<category>/<unix ms>-<random><ext> and the
    files are served under /uploads/.
  - CloudStore writes to a Firebase Cloud Storage bucket under
    uploads/<category>/<uuid><ext>. Bucket calls run through a circuit
    breaker that opens after five consecutive failures.

Removing an object that no longer exists succeeds on both backends.
*/
package mediastore

package common

import "time"

// UploadCleanupDelay is how long an uploaded import file is kept on disk
// after the import has been started.
const UploadCleanupDelay = 5 * time.Minute

// TempDirName is the working directory (relative to cwd) for downloaded
// uploads and generated failure reports.
const TempDirName = "tmp"

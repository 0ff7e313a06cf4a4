package m3lc

// Version is the library/CLI version reported by `m3lc version`.
const Version = "0.2.0"

package domain

// KeyPrefix namespaces every key kwscout writes to the shared KV store.
const KeyPrefix = "kwscout:"

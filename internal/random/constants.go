package random

// SeedStreamMask derives the second PCG word from the seed so that a single
// configured seed selects a full generator state
const SeedStreamMask = 0x9E3779B97F4A7C15

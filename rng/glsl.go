package rng

// GLSL is the RNG primitives shared by every pass that draws random numbers
// on the GPU (reset's antialiasing jitter, render's delta-tracking and
// phase sampling). The Go functions in rng.go mirror it: rngHash, rngSeed
// and rngU match Hash, Seed and U bit for bit, while rngExp and rngSphere
// clamp their inputs slightly differently from Exp and Sphere.
const GLSL = `
uint rngHash(uint state) {
    state = state * 747796405u + 2891336453u;
    uint word = ((state >> ((state >> 28u) + 4u)) ^ state) * 277803737u;
    return (word >> 22u) ^ word;
}

uint rngSeed(uint u, uint v, uint s) {
    return rngHash(19u * u + 47u * v + 101u * s + 131u);
}

float rngU(inout uint state) {
    state = rngHash(state);
    uint bits = (state >> 9u) | 0x3f800000u;
    return uintBitsToFloat(bits) - 1.0;
}

float rngExp(inout uint state, float lambda) {
    float u = max(rngU(state), 1e-30);
    return -log(u) / lambda;
}

vec2 rngSquare(inout uint state) {
    return vec2(rngU(state), rngU(state));
}

vec2 rngDisk(inout uint state) {
    vec2 uv = rngSquare(state);
    float r = sqrt(uv.x);
    float theta = 6.283185307179586 * uv.y;
    return vec2(r * cos(theta), r * sin(theta));
}

vec3 rngSphere(inout uint state) {
    vec2 d = rngDisk(state);
    float n = dot(d, d);
    float root = sqrt(max(1.0 - n, 0.0));
    return vec3(2.0 * root * d.x, 2.0 * root * d.y, 1.0 - 2.0 * n);
}
`

package main

// CircleCollision checks if two circles overlap
func CircleCollision(x1, y1, r1, x2, y2, r2 float64) bool {
	dx := x2 - x1
	dy := y2 - y1
	dist2 := dx*dx + dy*dy
	radSum := r1 + r2
	return dist2 < radSum*radSum
}

// CircleRectCollision checks if a circle overlaps an axis-aligned rectangle
func CircleRectCollision(cx, cy, radius, rx, ry, rw, rh float64) bool {
	closestX := Clamp(cx, rx, rx+rw)
	closestY := Clamp(cy, ry, ry+rh)
	dx := cx - closestX
	dy := cy - closestY
	return dx*dx+dy*dy < radius*radius
}

// PointRectCollision checks if a point lies inside an axis-aligned rectangle
func PointRectCollision(px, py, rx, ry, rw, rh float64) bool {
	return px >= rx && px <= rx+rw && py >= ry && py <= ry+rh
}

// Hit pairs a projectile with the teacher it struck this tick.
type Hit struct {
	Projectile *Projectile
	Teacher    *Teacher
}

// ResolveHits checks every in-flight or just-landed egg against every
// teacher. Invulnerable or hidden teachers are exempt. Each egg resolves at
// most one hit; when several teachers overlap it, the lowest slot index wins.
func ResolveHits(projectiles []*Projectile, teachers []*Teacher) []Hit {
	var hits []Hit
	for _, proj := range projectiles {
		if !proj.Active && !proj.Landed {
			continue
		}
		for _, tc := range teachers {
			if tc.Invulnerable || tc.Hidden {
				continue
			}
			if CircleCollision(proj.X, proj.Y, EggRadius, tc.X, tc.Y, TeacherRadius) {
				hits = append(hits, Hit{Projectile: proj, Teacher: tc})
				break
			}
		}
	}
	return hits
}

package tick

// Cell is the smallest unit of integrable state: a pair (x, xdot) plus the
// scratch a multi-pass method needs to recompute x across several passes
// of one primary step (§4.1, C1). Ownership is exclusive to one block;
// cells are never shared or forwarded by reference across block
// boundaries.
type Cell struct {
	X    float64
	Xdot float64

	x0 float64
	k  [5]float64
}

// Reset sets the cell's initial condition. Called from a block's Init.
func (c *Cell) Reset(x0 float64) {
	c.X = x0
	c.Xdot = 0
	c.x0 = 0
	c.k = [5]float64{}
}

// Propagate advances X by one pass of the tick's current method. It must
// run after every block has written Xdot for this pass (§4.2 Propagate,
// §4.5 kernel ordering).
func (c *Cell) Propagate(tk *Tick) {
	switch tk.Method {
	case MethodEuler:
		c.propagateEuler(tk)
	case MethodRK2:
		c.propagateRK2(tk)
	case MethodRK4:
		c.propagateRK4(tk)
	case MethodMerson:
		c.propagateMerson(tk)
	}
}

func (c *Cell) propagateEuler(tk *Tick) {
	c.X += tk.Dt * c.Xdot
}

func (c *Cell) propagateRK2(tk *Tick) {
	switch tk.Kpass {
	case 0:
		c.x0 = c.X
		c.k[0] = c.Xdot
		c.X = c.x0 + tk.Dt*c.k[0]
	case 1:
		c.k[1] = c.Xdot
		c.X = c.x0 + tk.Dtp*c.k[1]
	}
}

func (c *Cell) propagateRK4(tk *Tick) {
	switch tk.Kpass {
	case 0:
		c.x0 = c.X
		c.k[0] = c.Xdot
		c.X = c.x0 + tk.Dt*c.k[0]
	case 1:
		c.k[1] = c.Xdot
		c.X = c.x0 + tk.Dt*c.k[1]
	case 2:
		c.k[2] = c.Xdot
		c.X = c.x0 + tk.Dt*c.k[2]
	case 3:
		c.k[3] = c.Xdot
		c.X = c.x0 + (tk.Dtp/6)*(c.k[0]+2*c.k[1]+2*c.k[2]+c.k[3])
	}
}

// propagateMerson implements the classical 5-stage Merson method; the
// final pass combines (k1 + 4*k4 + k5)/6 * dt exactly as §4.1 specifies.
func (c *Cell) propagateMerson(tk *Tick) {
	dt := tk.Dtp
	switch tk.Kpass {
	case 0:
		c.x0 = c.X
		c.k[0] = c.Xdot
		c.X = c.x0 + (dt/3)*c.k[0]
	case 1:
		c.k[1] = c.Xdot
		c.X = c.x0 + (dt/6)*(c.k[0]+c.k[1])
	case 2:
		c.k[2] = c.Xdot
		c.X = c.x0 + (dt/8)*(c.k[0]+3*c.k[2])
	case 3:
		c.k[3] = c.Xdot
		c.X = c.x0 + (dt/2)*(c.k[0]-3*c.k[2]+4*c.k[3])
	case 4:
		c.k[4] = c.Xdot
		c.X = c.x0 + (dt/6)*(c.k[0]+4*c.k[3]+c.k[4])
	}
}

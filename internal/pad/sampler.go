package pad

// Sample reads one raw snapshot from the connection: exactly the
// capability counts' worth of axes, buttons and hats, each read
// independently (the transport gives no multi-channel atomicity). A
// failed read substitutes the channel's zero value; a disconnected
// device yields an all-empty snapshot.
func Sample(conn Connection) RawSnapshot {
	c, ok := conn.(Connected)
	if !ok {
		return RawSnapshot{}
	}

	snap := RawSnapshot{
		Axes:    make([]float64, c.Caps.Axes),
		Buttons: make([]bool, c.Caps.Buttons),
		Hats:    make([]HatVector, c.Caps.Hats),
	}
	for i := range snap.Axes {
		if v, ok := c.Device.Axis(i); ok {
			snap.Axes[i] = v
		}
	}
	for i := range snap.Buttons {
		if v, ok := c.Device.Button(i); ok {
			snap.Buttons[i] = v
		}
	}
	for i := range snap.Hats {
		if v, ok := c.Device.Hat(i); ok {
			snap.Hats[i] = v
		}
	}
	return snap
}

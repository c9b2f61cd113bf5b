package skeleton

func rotations() []ChannelType {
	return []ChannelType{RotationZ, RotationX, RotationY}
}

func endSite(x, y, z float64) Children {
	return EndSite{Offset: Vec3{x, y, z}}
}

// testSkeleton builds a small biped: Hips (6 channels) with a spine chain
// ending in an end site, a two-joint left leg and a one-joint right leg.
func testSkeleton() *Node {
	return &Node{
		Name: "Hips",
		Channels: []ChannelType{
			TranslationX, TranslationY, TranslationZ,
			RotationZ, RotationX, RotationY,
		},
		Children: Joints{
			{
				Name:     "Spine",
				Offset:   Vec3{0, 5, 0},
				Channels: rotations(),
				Children: Joints{
					{
						Name:     "Head",
						Offset:   Vec3{0, 10, 0},
						Channels: rotations(),
						Children: endSite(0, 4, 0),
					},
				},
			},
			{
				Name:     "LeftLeg",
				Offset:   Vec3{3, -2, 0},
				Channels: rotations(),
				Children: Joints{
					{
						Name:     "LeftFoot",
						Offset:   Vec3{0, -15, 0},
						Channels: rotations(),
						Children: endSite(0, -1, 2),
					},
				},
			},
			{
				Name:     "RightLeg",
				Offset:   Vec3{-3, -2, 0},
				Channels: rotations(),
				Children: endSite(0, -17, 0),
			},
		},
	}
}

// indexedAnimation fills every cell with 1000*column + frame so a value
// identifies where it came from.
func indexedAnimation(frames int) *Animation {
	root := testSkeleton()
	count, err := ChannelCount(root)
	if err != nil {
		panic(err)
	}

	matrix := make([][]float64, frames)
	for f := range matrix {
		row := make([]float64, count)
		for c := range row {
			row[c] = float64(1000*c + f)
		}
		matrix[f] = row
	}

	return &Animation{Root: root, FrameTime: 1.0 / 120, Frames: matrix}
}

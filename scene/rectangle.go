package scene

import (
	"isoedit/diagram"
	"isoedit/geometry"
)

// RectanglePatch is a partial update of a rectangle.
type RectanglePatch struct {
	From             *geometry.Coords
	To               *geometry.Coords
	Color            *string
	Style            *diagram.LineStyle
	Width            *int
	Radius           *int
	ImageData        *string
	MirrorHorizontal *bool
	MirrorVertical   *bool
	RotationAngle    *float64
	Isometric        *bool
}

func (p RectanglePatch) apply(r *diagram.Rectangle) {
	set(&r.From, p.From)
	set(&r.To, p.To)
	set(&r.Color, p.Color)
	set(&r.Style, p.Style)
	set(&r.Width, p.Width)
	set(&r.Radius, p.Radius)
	set(&r.ImageData, p.ImageData)
	set(&r.MirrorHorizontal, p.MirrorHorizontal)
	set(&r.MirrorVertical, p.MirrorVertical)
	set(&r.RotationAngle, p.RotationAngle)
	if p.Isometric != nil {
		iso := *p.Isometric
		r.Isometric = &iso
	}
}

// CreateRectangle adds r at the front of the view's rectangles.
func CreateRectangle(s State, viewID string, r diagram.Rectangle) (State, error) {
	next, view, err := begin(s, viewID)
	if err != nil {
		return s, err
	}
	view.Rectangles = prepend(view.Rectangles, r.Clone())
	return commitView(s, next, viewID)
}

// UpdateRectangle merges patch into the rectangle.
func UpdateRectangle(s State, viewID, id string, patch RectanglePatch) (State, error) {
	next, view, err := begin(s, viewID)
	if err != nil {
		return s, err
	}
	_, r, err := view.RectangleByID(id)
	if err != nil {
		return s, err
	}
	patch.apply(r)
	return commitView(s, next, viewID)
}

// DeleteRectangle removes the rectangle.
func DeleteRectangle(s State, viewID, id string) (State, error) {
	next, view, err := begin(s, viewID)
	if err != nil {
		return s, err
	}
	i, _, err := view.RectangleByID(id)
	if err != nil {
		return s, err
	}
	view.Rectangles = removeAt(view.Rectangles, i)
	return next, nil
}

// VolumePatch is a partial update of a volume.
type VolumePatch struct {
	RectanglePatch
	Height  *int
	HasRoof *bool
}

// CreateVolume adds v at the front of the view's volumes.
func CreateVolume(s State, viewID string, v diagram.Volume) (State, error) {
	next, view, err := begin(s, viewID)
	if err != nil {
		return s, err
	}
	view.Volumes = prepend(view.Volumes, v.Clone())
	return commitView(s, next, viewID)
}

// UpdateVolume merges patch into the volume.
func UpdateVolume(s State, viewID, id string, patch VolumePatch) (State, error) {
	next, view, err := begin(s, viewID)
	if err != nil {
		return s, err
	}
	_, v, err := view.VolumeByID(id)
	if err != nil {
		return s, err
	}
	patch.RectanglePatch.apply(&v.Rectangle)
	set(&v.Height, patch.Height)
	set(&v.HasRoof, patch.HasRoof)
	return commitView(s, next, viewID)
}

// DeleteVolume removes the volume.
func DeleteVolume(s State, viewID, id string) (State, error) {
	next, view, err := begin(s, viewID)
	if err != nil {
		return s, err
	}
	i, _, err := view.VolumeByID(id)
	if err != nil {
		return s, err
	}
	view.Volumes = removeAt(view.Volumes, i)
	return next, nil
}

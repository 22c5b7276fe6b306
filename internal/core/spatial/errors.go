package spatial

import (
	"errors"
	"fmt"
)

var ErrInvalidObstacle = errors.New("invalid obstacle")

type InvalidObstacleError struct {
	Index    int
	Obstacle Obstacle
}

func (e *InvalidObstacleError) Error() string {
	return fmt.Sprintf("obstacle %d (%q): min must be below max on both axes", e.Index, e.Obstacle.Name)
}

func (e *InvalidObstacleError) Unwrap() error { return ErrInvalidObstacle }

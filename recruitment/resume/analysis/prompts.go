package analysis

const (
	nameSystemPrompt = `You extract a person's full name from resume text. Reply with the name only, no explanations.`
	nameUserPrompt   = "What is the full name of the person in this resume? If there is none, reply \"unknown\".\n\n"

	socialSystemPrompt = `You extract social media links from resume text with high precision.`
	socialUserPrompt   = `Find the LinkedIn and GitHub profiles in the resume below.
Return JSON: {"linkedin": "...", "github": "..."}.
Use the full URL when present. If a profile is mentioned without a URL, use "Mentioned but URL not found".
If a profile is not mentioned, use an empty string.

`
)

const segmentSystemPrompt = `You split resumes into their sections. Return only valid JSON.`

const segmentUserPrompt = `Split this resume into sections. Return a JSON object whose keys are the section
headings exactly as they appear (e.g. "Summary", "Work Experience", "Education", "Skills") and whose
values are the full text of each section. Put any text before the first heading under "Header".

Resume:
`

const structureSystemPrompt = `You are a professional resume parser. Return ONLY valid JSON, no commentary.`

const structureUserPrompt = `Convert this resume into JSON with exactly these keys:

{
  "summary": string,
  "work_experience": [{"company": string, "title": string, "dates": string, "location": string, "achievements": [string]}],
  "skills": {"technical_skills": [string], "soft_skills": [string]},
  "education": [{"institution": string, "degree": string, "dates": string}],
  "certifications": [string],
  "projects": [{"title": string, "description": string, "technologies": [string]}]
}

Use empty strings and empty arrays for anything the resume does not contain.

Resume:
`

const requirementsSystemPrompt = `You analyze job descriptions and list what the employer asks for. Return ONLY valid JSON.`

const requirementsUserPrompt = `Extract the requirements from this job description as JSON:

{
  "required_technical_skills": [string],
  "preferred_technical_skills": [string],
  "required_soft_skills": [string],
  "experience_level": string,
  "key_responsibilities": [string],
  "required_qualifications": [string]
}

Job description:
`

const scoreSystemPrompt = `You are an expert resume analyst and recruiter. You compare a resume with a job
description and score how well they match. Be specific and fair. Return ONLY valid JSON.`

const scoreUserPrompt = `Score the resume against the job description.

Weight the categories as follows:
- skills_match: up to 40 points
- experience_relevance: up to 30 points
- education_certifications: up to 15 points
- additional_factors: up to 15 points

Return JSON:
{
  "match_score": number from 0 to 100,
  "category_scores": {"skills_match": number, "experience_relevance": number, "education_certifications": number, "additional_factors": number},
  "missing_skills": [string],
  "matched_skills": [string],
  "key_matches": [string],
  "recommendations": [string],
  "alternative_positions": [string]
}

If match_score is below 40, suggest 2-3 alternative_positions that fit the candidate's background.
`

const optimizeSystemPrompt = `You are an expert resume writer. You rewrite resumes so they read well to recruiters
and applicant tracking systems without inventing experience. Return ONLY valid JSON.`

const optimizeUserPrompt = `Rewrite the resume below for the job description. Keep every employer, title and date.
Strengthen achievements with action verbs and measurable results, and surface skills the job asks for
that the resume already supports.

Return JSON with exactly these keys:
{
  "summary": string,
  "work_experience": [{"company": string, "title": string, "dates": string, "location": string, "achievements": [string]}],
  "skills": {"technical_skills": [string], "soft_skills": [string]},
  "education": [...],
  "certifications": [string],
  "projects": [{"title": string, "description": string, "technologies": [string]}]
}
`

const tailorUserPrompt = `Tailor the resume below to the job description. Keep every employer, title and date.
Every work experience entry should show at least one of the job keywords where the candidate's
history supports it. Reorder skills so the ones the job asks for come first.

Return JSON with exactly these keys:
{
  "summary": string,
  "work_experience": [{"company": string, "title": string, "dates": string, "location": string, "achievements": [string]}],
  "skills": {"technical_skills": [string], "soft_skills": [string]},
  "education": [...],
  "certifications": [string],
  "projects": [{"title": string, "description": string, "technologies": [string]}]
}
`

const interviewSystemPrompt = `You are an experienced hiring manager preparing interview questions. Return ONLY valid JSON.`

const interviewUserPrompt = `Write interview questions for this job:
- 5 technical questions about the skills it requires
- 5 behavioral questions
- 3 situational questions based on its responsibilities

Return JSON: {"technical": [string], "behavioral": [string], "situational": [string]}

Job description:
`

const skillsSystemPrompt = `You extract skills from text. Return ONLY a JSON array of strings.`

const skillsUserPrompt = `List every professional skill (technical and soft) mentioned in the text below as a JSON
array of short strings, e.g. ["Python", "Project Management"].

Text:
`
